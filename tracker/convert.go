package tracker

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrMissingTrackID is returned when grouping a detection without an identity
var ErrMissingTrackID = errors.New("detection has no track id")

// DetectionsToTracks groups detections by their track ID and builds a Track
// for each identity
func DetectionsToTracks(dets []*Detection) (map[int]*Track, error) {

	grouped := make(map[int][]*Detection)

	for _, det := range dets {
		id, ok := det.TrackID()

		if !ok {
			return nil, errors.Wrapf(ErrMissingTrackID, "%s", det)
		}

		grouped[id] = append(grouped[id], det)
	}

	tracks := make(map[int]*Track, len(grouped))

	for id, group := range grouped {
		track, err := NewTrack(group, id)

		if err != nil {
			return nil, err
		}

		tracks[id] = track
	}

	return tracks, nil
}

// SortedTrackIDs returns the keys of a track map in ascending order
func SortedTrackIDs(tracks map[int]*Track) []int {

	ids := make([]int, 0, len(tracks))

	for id := range tracks {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}
