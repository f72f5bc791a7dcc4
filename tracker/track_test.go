package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDets(id int, frames ...int) []*Detection {

	var dets []*Detection

	for _, f := range frames {
		dets = append(dets, NewDetection(NewRect(float64(f), 0, 10, 10), f, WithTrackID(id)))
	}

	return dets
}

func TestNewTrack(t *testing.T) {

	dets := makeDets(1, 5, 2, 9, 3)

	track, err := NewTrack(dets, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, track.TrackID())
	assert.Equal(t, 2, track.MinFrame())
	assert.Equal(t, 9, track.MaxFrame())
	assert.Equal(t, 4, track.Len())

	var frames []int
	for _, d := range track.Detections() {
		frames = append(frames, d.Frame())
	}
	assert.Equal(t, []int{2, 3, 5, 9}, frames)

	// input order untouched
	assert.Equal(t, 5, dets[0].Frame())

	for _, src := range dets {
		got, ok := track.DetectionAt(src.Frame())
		require.True(t, ok)
		assert.Same(t, src, got)
	}

	got, ok := track.DetectionAt(4)
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.Equal(t, "< Track: id=   1, frames    2 to    9 >", track.String())
}

func TestNewTrackEmpty(t *testing.T) {

	_, err := NewTrack(nil, 3)
	assert.True(t, errors.Is(err, ErrEmptyTrack))
}

func TestNewTrackDuplicateFrame(t *testing.T) {

	_, err := NewTrack(makeDets(1, 1, 2, 2), 1)
	assert.True(t, errors.Is(err, ErrDuplicateFrame))
}

func TestDetectionsToTracks(t *testing.T) {

	dets := append(makeDets(1, 1, 2), makeDets(7, 2, 3, 4)...)

	tracks, err := DetectionsToTracks(dets)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 7}, SortedTrackIDs(tracks))
	assert.Equal(t, 3, tracks[7].Len())
	assert.Equal(t, 4, tracks[7].MaxFrame())

	_, err = DetectionsToTracks([]*Detection{NewDetection(NewRect(0, 0, 1, 1), 1)})
	assert.True(t, errors.Is(err, ErrMissingTrackID))
}
