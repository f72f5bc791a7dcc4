// Package stats walks the splits of a dataset, collects per sequence
// counts from the ground truth and persists a summary of the run.
package stats

import (
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// ErrDuplicateSequence is returned when two sequences share a numeric id
var ErrDuplicateSequence = errors.New("duplicate sequence id")

// SequenceStats are the counts collected for one sequence.  The ground truth
// derived counts are nil for splits without ground truth
type SequenceStats struct {
	ID        int    `json:"id" db:"seq_id"`
	Name      string `json:"name" db:"name"`
	Split     string `json:"split" db:"split"`
	Frames    int    `json:"frames" db:"frames"`
	Instances *int   `json:"instances" db:"instances"`
	Pairs     *int   `json:"pairs" db:"pairs"`
	Overlaps  *int   `json:"overlaps" db:"overlaps"`
}

// Summary is the persisted record of a statistics run.  The per sequence
// arrays are indexed by sequence id - 1, slots of unseen sequences and of
// sequences without ground truth are null
type Summary struct {
	RunID            string    `json:"run_id"`
	CreatedAt        time.Time `json:"created_at"`
	DataRoot         string    `json:"data_root"`
	Splits           []string  `json:"splits"`
	OverlapThreshold float64   `json:"overlap_threshold"`
	Method           string    `json:"method"`

	NumSequences      int    `json:"num_sequences"`
	TotalFrames       int    `json:"total_frames"`
	FramesPerSequence []*int `json:"num_frames_in_sequence"`

	TotalInstances       int    `json:"num_instances"`
	InstancesPerSequence []*int `json:"num_instances_in_sequence"`

	TotalPairs       int    `json:"total_pairs_to_annotate"`
	PairsPerSequence []*int `json:"num_pairs_to_annotate_in_sequence"`

	TotalOverlaps       int    `json:"total_overlapping_pairs"`
	OverlapsPerSequence []*int `json:"num_overlapping_pairs_in_sequence"`

	MeanPairsPerFrame float64 `json:"mean_pairs_per_frame"`
	StdPairsPerFrame  float64 `json:"std_pairs_per_frame"`

	Sequences []SequenceStats `json:"sequences"`
}

// setSlot stores v at arr[id-1], growing arr with nil slots as needed
func setSlot(arr []*int, id int, v *int) []*int {

	for len(arr) < id {
		arr = append(arr, nil)
	}

	arr[id-1] = v

	return arr
}

func intPtr(v int) *int {
	return &v
}

// index records the per sequence arrays of seq without touching totals
func (s *Summary) index(seq SequenceStats) error {

	if seq.ID < 1 {
		return errors.Errorf("sequence %s has invalid id %d", seq.Name, seq.ID)
	}

	if seq.ID <= len(s.FramesPerSequence) && s.FramesPerSequence[seq.ID-1] != nil {
		return errors.Wrapf(ErrDuplicateSequence, "%s (id %d)", seq.Name, seq.ID)
	}

	s.FramesPerSequence = setSlot(s.FramesPerSequence, seq.ID, intPtr(seq.Frames))

	if seq.Instances != nil {
		s.InstancesPerSequence = setSlot(s.InstancesPerSequence, seq.ID, intPtr(*seq.Instances))
	}

	if seq.Pairs != nil {
		s.PairsPerSequence = setSlot(s.PairsPerSequence, seq.ID, intPtr(*seq.Pairs))
	}

	if seq.Overlaps != nil {
		s.OverlapsPerSequence = setSlot(s.OverlapsPerSequence, seq.ID, intPtr(*seq.Overlaps))
	}

	return nil
}

// Add records a sequence and accumulates the totals
func (s *Summary) Add(seq SequenceStats) error {

	if err := s.index(seq); err != nil {
		return err
	}

	s.Sequences = append(s.Sequences, seq)
	s.NumSequences++
	s.TotalFrames += seq.Frames

	if seq.Instances != nil {
		s.TotalInstances += *seq.Instances
	}

	if seq.Pairs != nil {
		s.TotalPairs += *seq.Pairs
	}

	if seq.Overlaps != nil {
		s.TotalOverlaps += *seq.Overlaps
	}

	return nil
}

// setPairDensity computes the mean and standard deviation of the per frame
// pair counts
func (s *Summary) setPairDensity(perFrame []float64) {

	switch len(perFrame) {
	case 0:
		s.MeanPairsPerFrame, s.StdPairsPerFrame = 0, 0
	case 1:
		s.MeanPairsPerFrame, s.StdPairsPerFrame = perFrame[0], 0
	default:
		s.MeanPairsPerFrame, s.StdPairsPerFrame = stat.MeanStdDev(perFrame, nil)
	}
}
