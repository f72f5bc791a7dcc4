package main

import (
	"flag"
	"log"

	"github.com/swdee/go-motstats/logger"
	"github.com/swdee/go-motstats/overlap"
	"github.com/swdee/go-motstats/sequence"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	seqDir := flag.String("d", "../data/dancetrack/train/dancetrack0001", "Sequence directory containing seqinfo.ini")
	trackerFile := flag.String("r", "", "Optional tracker result file to match against the ground truth")
	minConf := flag.Float64("c", -1, "Load det/det.txt and keep detections with confidence above this, negative skips")
	threshold := flag.Float64("t", 0.5, "IoU a pair of boxes must exceed to count as overlapping [0.0-1.0]")
	method := flag.String("m", "rectangle", "IoU method [rectangle|polygon]")
	checkImages := flag.Bool("i", false, "Verify frame image dimensions against seqinfo.ini")
	logLevel := flag.String("l", "info", "Log level [debug|info|warn|error]")
	flag.Parse()

	lg, err := logger.New(logger.Options{Level: *logLevel})

	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}

	m, err := overlap.ParseMethod(*method)

	if err != nil {
		log.Fatal("Error parsing method: ", err)
	}

	seq, err := sequence.New(*seqDir, sequence.WithLogger(lg))

	if err != nil {
		log.Fatal("Error loading sequence: ", err)
	}

	info := seq.Info()
	log.Printf("Sequence %s: %d frames %dx%d at %d fps\n",
		info.Name, info.Length, info.Width, info.Height, info.FrameRate)

	tracks, err := seq.GroundTruthTracks()

	if err != nil {
		log.Fatal("Error reading tracks: ", err)
	}

	for _, tr := range tracks {
		log.Printf("  %s %d boxes\n", tr, tr.Len())
	}

	pairs, err := overlap.SequencePairCount(seq)

	if err != nil {
		log.Fatal("Error counting pairs: ", err)
	}

	counts, err := overlap.FrameOverlapCounts(seq, *threshold, m)

	if err != nil {
		log.Fatal("Error counting overlaps: ", err)
	}

	busiest, overlaps := 0, 0

	for i, c := range counts {
		overlaps += c

		if c > counts[busiest] {
			busiest = i
		}
	}

	log.Printf("Pairs to annotate: %d, overlapping pairs (%s IoU > %.2f): %d, busiest frame %d with %d\n",
		pairs, m, *threshold, overlaps, busiest+1, counts[busiest])

	if *minConf >= 0 {
		if err := seq.LoadRawDetections(""); err != nil {
			log.Fatal("Error loading raw detections: ", err)
		}

		total := 0

		for frame := 1; frame <= seq.Len(); frame++ {
			dets, err := seq.RawDetectionsInFrame(frame, minConf)

			if err != nil {
				log.Fatal("Error reading raw detections: ", err)
			}

			total += len(dets)
		}

		log.Printf("Raw detections with confidence above %.2f: %d\n", *minConf, total)
	}

	if *trackerFile != "" {
		matchTracker(seq, *trackerFile, *threshold)
	}

	if *checkImages {
		if err := seq.CheckImages(); err != nil {
			log.Fatal("Image check failed: ", err)
		}

		log.Printf("All %d frame images match %dx%d\n", seq.Len(), info.Width, info.Height)
	}

	log.Println("done")
}

// matchTracker loads tracker output and reports how many of its boxes match
// a ground truth identity in each frame
func matchTracker(seq *sequence.Sequence, file string, threshold float64) {

	if err := seq.LoadTrackerOutput(file); err != nil {
		log.Fatal("Error loading tracker output: ", err)
	}

	tracks, err := seq.Tracks()

	if err != nil {
		log.Fatal("Error reading tracker tracks: ", err)
	}

	matched, total := 0, 0

	for frame := 1; frame <= seq.Len(); frame++ {
		gts, err := seq.GroundTruthInFrame(frame)

		if err != nil {
			log.Fatal("Error reading ground truth: ", err)
		}

		dts, err := seq.TrackedInFrame(frame)

		if err != nil {
			log.Fatal("Error reading tracker output: ", err)
		}

		for _, det := range overlap.MatchFrame(gts, dts, threshold) {
			total++

			if _, ok := det.MatchedID(); ok {
				matched++
			}
		}
	}

	ratio := 0.0

	if total > 0 {
		ratio = float64(matched) / float64(total)
	}

	log.Printf("Tracker output: %d tracks, %d of %d boxes matched (%.1f%%)\n",
		len(tracks), matched, total, ratio*100)
}
