package stats

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAdd(t *testing.T) {

	s := &Summary{}

	require.NoError(t, s.Add(SequenceStats{
		ID: 2, Name: "dancetrack0002", Split: "train", Frames: 10,
		Instances: intPtr(4), Pairs: intPtr(30), Overlaps: intPtr(3),
	}))
	require.NoError(t, s.Add(SequenceStats{
		ID: 5, Name: "dancetrack0005", Split: "test", Frames: 7,
	}))

	assert.Equal(t, 2, s.NumSequences)
	assert.Equal(t, 17, s.TotalFrames)
	assert.Equal(t, 4, s.TotalInstances)
	assert.Equal(t, 30, s.TotalPairs)
	assert.Equal(t, 3, s.TotalOverlaps)

	require.Len(t, s.FramesPerSequence, 5)
	assert.Nil(t, s.FramesPerSequence[0])
	assert.Equal(t, 10, *s.FramesPerSequence[1])
	assert.Equal(t, 7, *s.FramesPerSequence[4])

	// the test split has no ground truth so its slot is never created
	require.Len(t, s.PairsPerSequence, 2)
	assert.Equal(t, 30, *s.PairsPerSequence[1])
}

func TestSummaryAddRejects(t *testing.T) {

	s := &Summary{}
	require.NoError(t, s.Add(SequenceStats{ID: 1, Name: "a", Frames: 1}))

	err := s.Add(SequenceStats{ID: 1, Name: "b", Frames: 1})
	assert.Equal(t, ErrDuplicateSequence, errors.Cause(err))

	assert.Error(t, s.Add(SequenceStats{ID: 0, Name: "c", Frames: 1}))

	// rejected sequences leave totals untouched
	assert.Equal(t, 1, s.NumSequences)
	assert.Equal(t, 1, s.TotalFrames)
}

func TestSetPairDensity(t *testing.T) {

	tests := []struct {
		name     string
		perFrame []float64
		mean     float64
		std      float64
	}{
		{"empty", nil, 0, 0},
		{"single frame", []float64{6}, 6, 0},
		{"constant", []float64{3, 3, 3}, 3, 0},
		{"mixed", []float64{3, 1, 0, 0, 0}, 0.8, math.Sqrt(1.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Summary{}
			s.setPairDensity(tt.perFrame)
			assert.InDelta(t, tt.mean, s.MeanPairsPerFrame, 1e-9)
			assert.InDelta(t, tt.std, s.StdPairsPerFrame, 1e-9)
		})
	}
}
