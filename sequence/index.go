package sequence

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-motstats/tracker"
)

// index holds one annotation file's detections keyed by frame and, for
// annotations with identities, the tracks keyed by identity
type index struct {
	state  LoadState
	frames map[int][]*tracker.Detection
	tracks map[int]*tracker.Track
}

// buildIndex distributes dets over frames [1, seqLen] and groups them into
// tracks when withTracks is set.  The result is only returned complete
func buildIndex(path string, seqLen int, dets []*tracker.Detection,
	withTracks bool) (*index, error) {

	idx := &index{
		state:  Loaded,
		frames: make(map[int][]*tracker.Detection, seqLen),
	}

	for frame := 1; frame <= seqLen; frame++ {
		idx.frames[frame] = []*tracker.Detection{}
	}

	for _, det := range dets {
		if det.Frame() < 1 || det.Frame() > seqLen {
			return nil, &ParseError{
				File: path,
				Err:  errors.Wrapf(ErrFrameOutOfRange, "%s outside [1, %d]",
					det, seqLen),
			}
		}

		idx.frames[det.Frame()] = append(idx.frames[det.Frame()], det)
	}

	if !withTracks {
		return idx, nil
	}

	tracks, err := tracker.DetectionsToTracks(dets)

	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	idx.tracks = tracks

	return idx, nil
}

// inFrame returns a copy of the detections in frame
func (idx *index) inFrame(frame int) ([]*tracker.Detection, error) {

	dets, ok := idx.frames[frame]

	if !ok {
		return nil, errors.Wrapf(ErrFrameOutOfRange, "frame %d", frame)
	}

	out := make([]*tracker.Detection, len(dets))
	copy(out, dets)

	return out, nil
}

// getTracks returns the tracks for ids, or every track ordered by identity
// when no ids are given
func (idx *index) getTracks(ids []int) ([]*tracker.Track, error) {

	if len(ids) == 0 {
		out := make([]*tracker.Track, 0, len(idx.tracks))

		for _, id := range tracker.SortedTrackIDs(idx.tracks) {
			out = append(out, idx.tracks[id])
		}

		return out, nil
	}

	out := make([]*tracker.Track, 0, len(ids))

	for _, id := range ids {
		track, ok := idx.tracks[id]

		if !ok {
			return nil, errors.Wrapf(ErrTrackNotFound, "id %d", id)
		}

		out = append(out, track)
	}

	return out, nil
}
