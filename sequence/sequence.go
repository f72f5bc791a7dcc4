// Package sequence loads one multi-object-tracking capture directory and
// answers frame and identity keyed queries over its annotations.
//
// A sequence directory follows the MOTChallenge layout:
//
//	<dir>/seqinfo.ini
//	<dir>/<imDir>/000001.jpg ...
//	<dir>/gt/gt.txt
//	<dir>/det/det.txt
//
// Ground truth is loaded when the Sequence is created.  Raw detections and
// tracker output are loaded on request and each query against them fails
// with ErrNotLoaded until then.
package sequence

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/swdee/go-motstats/logger"
	"github.com/swdee/go-motstats/tracker"
)

const (
	// DefaultGroundTruthPath is the ground truth file relative to the
	// sequence directory
	DefaultGroundTruthPath = "gt/gt.txt"
	// DefaultDetectionsPath is the raw detections file relative to the
	// sequence directory
	DefaultDetectionsPath = "det/det.txt"
	// PedestrianClass is the class id of people (dancers in DanceTrack)
	PedestrianClass = 1
)

// Sequence owns every Detection and Track parsed from one capture directory
type Sequence struct {
	dir         string
	info        Info
	imgDir      string
	imgPadding  int
	classIDs    []int
	log         logrus.FieldLogger
	gt          *index
	rawDets     *index
	trackerDets *index
}

// Option configures a Sequence at construction
type Option func(*Sequence)

// WithClassIDs sets the ground truth classes to keep, default PedestrianClass
func WithClassIDs(ids ...int) Option {
	return func(s *Sequence) {
		s.classIDs = append([]int(nil), ids...)
	}
}

// WithLogger sets the logger used to report loads
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Sequence) {
		s.log = log
	}
}

// New opens the sequence directory, parses seqinfo.ini and loads the ground
// truth annotations
func New(dir string, opts ...Option) (*Sequence, error) {

	if err := checkDir(dir); err != nil {
		return nil, err
	}

	s := &Sequence{
		dir:         dir,
		classIDs:    []int{PedestrianClass},
		log:         logger.Discard(),
		gt:          &index{},
		rawDets:     &index{},
		trackerDets: &index{},
	}

	for _, opt := range opts {
		opt(s)
	}

	var err error

	s.info, err = readSeqInfo(filepath.Join(dir, SeqInfoFile))

	if err != nil {
		return nil, err
	}

	s.imgDir = filepath.Join(dir, s.info.ImageDir)
	s.imgPadding, err = imagePadding(s.imgDir, s.info.ImageExt)

	if err != nil {
		return nil, err
	}

	if err := s.LoadGroundTruth(""); err != nil {
		return nil, err
	}

	return s, nil
}

// Dir returns the sequence directory as given to New
func (s *Sequence) Dir() string {
	return s.dir
}

// Info returns the parsed seqinfo.ini metadata
func (s *Sequence) Info() Info {
	return s.info
}

// Len returns the number of frames in the sequence
func (s *Sequence) Len() int {
	return s.info.Length
}

// State returns the load state of an index
func (s *Sequence) State(kind IndexKind) LoadState {
	return s.indexOf(kind).state
}

func (s *Sequence) indexOf(kind IndexKind) *index {
	switch kind {
	case RawDetections:
		return s.rawDets
	case TrackerOutput:
		return s.trackerDets
	}
	return s.gt
}

// resolve returns path, or def joined to the sequence directory when path
// is empty
func (s *Sequence) resolve(path, def string) string {
	if path == "" {
		return filepath.Join(s.dir, def)
	}
	return path
}

// LoadGroundTruth (re)loads the ground truth index from path, default
// gt/gt.txt, keeping records whose class is in classIDs, default the
// classes the Sequence was created with.  On failure the previous index is
// kept
func (s *Sequence) LoadGroundTruth(path string, classIDs ...int) error {

	path = s.resolve(path, DefaultGroundTruthPath)

	if len(classIDs) == 0 {
		classIDs = s.classIDs
	}

	accept := make(map[int]struct{}, len(classIDs))

	for _, id := range classIDs {
		accept[id] = struct{}{}
	}

	dets, err := readAnnotations(path, gtFields, gtFields, groundTruthParser(accept))

	if err != nil {
		return errors.Wrap(err, "loading ground truth")
	}

	idx, err := buildIndex(path, s.info.Length, dets, true)

	if err != nil {
		return errors.Wrap(err, "loading ground truth")
	}

	s.gt = idx

	s.log.WithFields(logrus.Fields{
		"sequence":   s.info.Name,
		"path":       path,
		"detections": len(dets),
		"tracks":     len(idx.tracks),
	}).Debug("Loaded ground truth")

	return nil
}

// LoadRawDetections (re)loads the detector output index from path, default
// det/det.txt
func (s *Sequence) LoadRawDetections(path string) error {

	path = s.resolve(path, DefaultDetectionsPath)

	dets, err := readAnnotations(path, detFields, 0, rawDetectionParser)

	if err != nil {
		return errors.Wrap(err, "loading raw detections")
	}

	idx, err := buildIndex(path, s.info.Length, dets, false)

	if err != nil {
		return errors.Wrap(err, "loading raw detections")
	}

	s.rawDets = idx

	s.log.WithFields(logrus.Fields{
		"sequence":   s.info.Name,
		"path":       path,
		"detections": len(dets),
	}).Debug("Loaded raw detections")

	return nil
}

// LoadTrackerOutput (re)loads the tracker result index from path
func (s *Sequence) LoadTrackerOutput(path string) error {

	if path == "" {
		return errors.Wrap(ErrNoPath, "loading tracker output")
	}

	dets, err := readAnnotations(path, detFields, 0, trackerOutputParser)

	if err != nil {
		return errors.Wrap(err, "loading tracker output")
	}

	idx, err := buildIndex(path, s.info.Length, dets, true)

	if err != nil {
		return errors.Wrap(err, "loading tracker output")
	}

	s.trackerDets = idx

	s.log.WithFields(logrus.Fields{
		"sequence":   s.info.Name,
		"path":       path,
		"detections": len(dets),
		"tracks":     len(idx.tracks),
	}).Debug("Loaded tracker output")

	return nil
}

// loaded returns the index of kind or a NotLoadedError
func (s *Sequence) loaded(kind IndexKind) (*index, error) {

	idx := s.indexOf(kind)

	if idx.state != Loaded {
		return nil, &NotLoadedError{Index: kind}
	}

	return idx, nil
}

// GroundTruthInFrame returns the ground truth detections in frame
func (s *Sequence) GroundTruthInFrame(frame int) ([]*tracker.Detection, error) {

	idx, err := s.loaded(GroundTruth)

	if err != nil {
		return nil, err
	}

	return idx.inFrame(frame)
}

// RawDetectionsInFrame returns the detector output in frame.  When minConf
// is not nil only detections with a confidence above it are returned
func (s *Sequence) RawDetectionsInFrame(frame int, minConf *float64) ([]*tracker.Detection, error) {

	idx, err := s.loaded(RawDetections)

	if err != nil {
		return nil, err
	}

	dets, err := idx.inFrame(frame)

	if err != nil || minConf == nil {
		return dets, err
	}

	kept := dets[:0]

	for _, det := range dets {
		if conf, ok := det.Confidence(); ok && conf > *minConf {
			kept = append(kept, det)
		}
	}

	return kept, nil
}

// TrackedInFrame returns the tracker output detections in frame
func (s *Sequence) TrackedInFrame(frame int) ([]*tracker.Detection, error) {

	idx, err := s.loaded(TrackerOutput)

	if err != nil {
		return nil, err
	}

	return idx.inFrame(frame)
}

// GroundTruthTracks returns the ground truth tracks with the given ids, or
// all of them ordered by id when none are given
func (s *Sequence) GroundTruthTracks(ids ...int) ([]*tracker.Track, error) {

	idx, err := s.loaded(GroundTruth)

	if err != nil {
		return nil, err
	}

	return idx.getTracks(ids)
}

// NumGroundTruthTracks returns the number of ground truth identities
func (s *Sequence) NumGroundTruthTracks() int {
	return len(s.gt.tracks)
}

// Tracks returns the tracker output tracks with the given ids, or all of
// them ordered by id when none are given
func (s *Sequence) Tracks(ids ...int) ([]*tracker.Track, error) {

	idx, err := s.loaded(TrackerOutput)

	if err != nil {
		return nil, err
	}

	return idx.getTracks(ids)
}

// FrameImagePath returns the full image path of a frame
func (s *Sequence) FrameImagePath(frame int) string {
	return filepath.Join(s.imgDir,
		fmt.Sprintf("%0*d%s", s.imgPadding, frame, s.info.ImageExt))
}
