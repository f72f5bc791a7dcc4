package tracker

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyTrack is returned when building a Track with no detections
	ErrEmptyTrack = errors.New("track has no detections")
	// ErrDuplicateFrame is returned when a track has two detections in the
	// same frame
	ErrDuplicateFrame = errors.New("track has more than one detection in a frame")
)

// Track represents one identity's trajectory, its detections ordered by
// frame number
type Track struct {
	// trackID is the identity shared by all detections
	trackID int
	// dets are the detections sorted ascending by frame
	dets []*Detection
	// frameToDet looks up a detection by frame number
	frameToDet map[int]*Detection
	// minFrame is the first frame the identity appears in
	minFrame int
	// maxFrame is the last frame the identity appears in
	maxFrame int
}

// NewTrack creates a Track from the detections belonging to identity
// trackID.  The given slice is not modified
func NewTrack(dets []*Detection, trackID int) (*Track, error) {

	if len(dets) == 0 {
		return nil, errors.Wrapf(ErrEmptyTrack, "track %d", trackID)
	}

	sorted := make([]*Detection, len(dets))
	copy(sorted, dets)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frame() < sorted[j].Frame()
	})

	t := &Track{
		trackID:    trackID,
		dets:       sorted,
		frameToDet: make(map[int]*Detection, len(sorted)),
		minFrame:   sorted[0].Frame(),
		maxFrame:   sorted[len(sorted)-1].Frame(),
	}

	for _, det := range sorted {
		if _, exists := t.frameToDet[det.Frame()]; exists {
			return nil, errors.Wrapf(ErrDuplicateFrame, "track %d frame %d",
				trackID, det.Frame())
		}
		t.frameToDet[det.Frame()] = det
	}

	return t, nil
}

// TrackID returns the identity of the track
func (t *Track) TrackID() int {
	return t.trackID
}

// MinFrame returns the first frame of the track
func (t *Track) MinFrame() int {
	return t.minFrame
}

// MaxFrame returns the last frame of the track
func (t *Track) MaxFrame() int {
	return t.maxFrame
}

// Len returns the number of detections in the track
func (t *Track) Len() int {
	return len(t.dets)
}

// Detections returns the detections ordered by frame
func (t *Track) Detections() []*Detection {
	out := make([]*Detection, len(t.dets))
	copy(out, t.dets)
	return out
}

// DetectionAt returns the detection at the given frame, the boolean is false
// when the identity is not present in that frame
func (t *Track) DetectionAt(frame int) (*Detection, bool) {
	det, ok := t.frameToDet[frame]
	return det, ok
}

// String returns a summary of the track for debugging
func (t *Track) String() string {
	return fmt.Sprintf("< Track: id=%4d, frames %4d to %4d >",
		t.trackID, t.minFrame, t.maxFrame)
}
