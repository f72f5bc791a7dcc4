package stats

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	motstats "github.com/swdee/go-motstats"
	"github.com/swdee/go-motstats/logger"
	"github.com/swdee/go-motstats/overlap"
	"github.com/swdee/go-motstats/sequence"
)

// Aggregator walks the splits of a dataset and builds a Summary
type Aggregator struct {
	cfg    Config
	method overlap.Method
	log    logrus.FieldLogger
}

// NewAggregator validates cfg and returns an Aggregator.  A nil log discards
// output
func NewAggregator(cfg Config, log logrus.FieldLogger) (*Aggregator, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	method, err := overlap.ParseMethod(cfg.Method)

	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Aggregator{
		cfg:    cfg,
		method: method,
		log:    log,
	}, nil
}

// SeqMapPath returns the seqmap file of a split
func (a *Aggregator) SeqMapPath(split string) string {
	return filepath.Join(a.cfg.DataRoot, split+"_seqmap.txt")
}

// Run collects the statistics of every sequence in the configured splits.
// The context is checked between sequences, a sequence load is never
// interrupted
func (a *Aggregator) Run(ctx context.Context) (*Summary, error) {

	summary := &Summary{
		RunID:            uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		DataRoot:         a.cfg.DataRoot,
		Splits:           append([]string(nil), a.cfg.Splits...),
		OverlapThreshold: a.cfg.OverlapThreshold,
		Method:           a.method.String(),
	}

	var perFrame []float64

	for _, split := range a.cfg.Splits {
		names, err := motstats.LoadSeqMap(a.SeqMapPath(split))

		if err != nil {
			return nil, errors.Wrapf(err, "split %s", split)
		}

		a.log.WithFields(logrus.Fields{
			"split":     split,
			"sequences": len(names),
		}).Info("Processing split")

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			seq, frames, err := a.collect(split, name)

			if err != nil {
				return nil, errors.Wrapf(err, "sequence %s/%s", split, name)
			}

			if err := summary.Add(seq); err != nil {
				return nil, err
			}

			perFrame = append(perFrame, frames...)
		}
	}

	summary.setPairDensity(perFrame)

	a.log.WithFields(logrus.Fields{
		"run_id":    summary.RunID,
		"sequences": summary.NumSequences,
		"frames":    summary.TotalFrames,
		"pairs":     summary.TotalPairs,
		"overlaps":  summary.TotalOverlaps,
	}).Info("Statistics collected")

	return summary, nil
}

// collect opens one sequence and extracts its counts along with the per
// frame pair counts of splits with ground truth.  The Sequence is dropped
// on return
func (a *Aggregator) collect(split, name string) (SequenceStats, []float64, error) {

	id, err := motstats.SequenceID(name)

	if err != nil {
		return SequenceStats{}, nil, err
	}

	dir := filepath.Join(a.cfg.DataRoot, split, name)

	// splits without ground truth only contribute their frame count
	if !a.cfg.isStatSplit(split) {
		info, err := sequence.ReadInfo(dir)

		if err != nil {
			return SequenceStats{}, nil, err
		}

		a.log.WithFields(logrus.Fields{
			"sequence": name,
			"frames":   info.Length,
		}).Debug("Counted frames")

		return SequenceStats{ID: id, Name: name, Split: split, Frames: info.Length}, nil, nil
	}

	seq, err := sequence.New(dir,
		sequence.WithClassIDs(a.cfg.ClassIDs...),
		sequence.WithLogger(a.log),
	)

	if err != nil {
		return SequenceStats{}, nil, err
	}

	st := SequenceStats{
		ID:     id,
		Name:   name,
		Split:  split,
		Frames: seq.Len(),
	}

	pairCounts, err := overlap.FramePairCounts(seq)

	if err != nil {
		return SequenceStats{}, nil, err
	}

	overlaps, err := overlap.SequenceOverlapCount(seq, a.cfg.OverlapThreshold, a.method)

	if err != nil {
		return SequenceStats{}, nil, err
	}

	perFrame := make([]float64, len(pairCounts))
	pairs := 0

	for i, c := range pairCounts {
		perFrame[i] = float64(c)
		pairs += c
	}

	st.Instances = intPtr(seq.NumGroundTruthTracks())
	st.Pairs = intPtr(pairs)
	st.Overlaps = intPtr(overlaps)

	a.log.WithFields(logrus.Fields{
		"sequence":  name,
		"frames":    st.Frames,
		"instances": *st.Instances,
		"pairs":     pairs,
		"overlaps":  overlaps,
	}).Debug("Collected sequence statistics")

	return st, perFrame, nil
}
