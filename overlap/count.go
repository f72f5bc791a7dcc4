package overlap

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-motstats/tracker"
)

// FrameSource gives access to the ground truth of a sequence frame by frame,
// it is satisfied by *sequence.Sequence
type FrameSource interface {
	// Len returns the number of frames, frames are numbered from 1
	Len() int
	// GroundTruthInFrame returns the ground truth detections of a frame
	GroundTruthInFrame(frame int) ([]*tracker.Detection, error)
}

// Pair is two overlapping detections of a frame, by index into the slice
// they were found in
type Pair struct {
	I, J int
	IoU  float64
}

// OverlappingPairs returns every unordered pair of distinct detections whose
// IoU is strictly greater than threshold
func OverlappingPairs(dets []*tracker.Detection, threshold float64, m Method) []Pair {

	var pairs []Pair

	for i := 0; i < len(dets); i++ {
		for j := i + 1; j < len(dets); j++ {
			iou := m.Compute(dets[i].Rect(), dets[j].Rect())

			if iou > threshold {
				pairs = append(pairs, Pair{I: i, J: j, IoU: iou})
			}
		}
	}

	return pairs
}

// FrameOverlapCount returns the number of unordered detection pairs with an
// IoU strictly greater than threshold
func FrameOverlapCount(dets []*tracker.Detection, threshold float64, m Method) int {
	return len(OverlappingPairs(dets, threshold, m))
}

// FrameOverlapCounts returns the overlap count of every frame, index 0
// holding frame 1
func FrameOverlapCounts(src FrameSource, threshold float64, m Method) ([]int, error) {

	counts := make([]int, src.Len())

	for frame := 1; frame <= src.Len(); frame++ {
		dets, err := src.GroundTruthInFrame(frame)

		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", frame)
		}

		counts[frame-1] = FrameOverlapCount(dets, threshold, m)
	}

	return counts, nil
}

// SequenceOverlapCount sums the frame overlap counts over a sequence
func SequenceOverlapCount(src FrameSource, threshold float64, m Method) (int, error) {

	counts, err := FrameOverlapCounts(src, threshold, m)

	if err != nil {
		return 0, err
	}

	return sum(counts), nil
}

// PairCount returns the number of distinct unordered pairs among n
// detections, n(n-1)/2, which is what an annotator has to compare
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// FramePairCounts returns the annotation pair count of every frame, index 0
// holding frame 1
func FramePairCounts(src FrameSource) ([]int, error) {

	counts := make([]int, src.Len())

	for frame := 1; frame <= src.Len(); frame++ {
		dets, err := src.GroundTruthInFrame(frame)

		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", frame)
		}

		counts[frame-1] = PairCount(len(dets))
	}

	return counts, nil
}

// SequencePairCount sums the frame pair counts over a sequence
func SequencePairCount(src FrameSource) (int, error) {

	counts, err := FramePairCounts(src)

	if err != nil {
		return 0, err
	}

	return sum(counts), nil
}

func sum(v []int) int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}
