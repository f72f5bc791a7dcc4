package sequence

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDirNotFound is returned when the sequence directory does not exist
	ErrDirNotFound = errors.New("sequence directory not found")
	// ErrInvalidSeqInfo is returned when seqinfo.ini is missing or incomplete
	ErrInvalidSeqInfo = errors.New("invalid sequence info")
	// ErrNoImages is returned when no image with the sequence's extension
	// exists to infer the filename padding from
	ErrNoImages = errors.New("no frame images found")
	// ErrNoPath is returned when a loader without a default file is given
	// no path
	ErrNoPath = errors.New("annotation path is required")
	// ErrNotLoaded is returned when querying an index that was never loaded
	ErrNotLoaded = errors.New("index not loaded")
	// ErrTrackNotFound is returned when a requested identity has no track
	ErrTrackNotFound = errors.New("track not found")
	// ErrFrameOutOfRange is returned for frames outside [1, seqLength]
	ErrFrameOutOfRange = errors.New("frame out of range")
	// ErrParse is returned for malformed annotation files
	ErrParse = errors.New("malformed annotation")
	// ErrImageMismatch is returned when a frame image does not match the
	// dimensions declared in seqinfo.ini
	ErrImageMismatch = errors.New("frame image does not match sequence info")
)

// IndexKind identifies one of the three annotation indices of a Sequence
type IndexKind int

const (
	// GroundTruth is the verified annotation index
	GroundTruth IndexKind = iota
	// RawDetections is the detector output index, without identities
	RawDetections
	// TrackerOutput is the tracker result index
	TrackerOutput
)

// String returns the name of the index
func (k IndexKind) String() string {
	switch k {
	case GroundTruth:
		return "ground truth"
	case RawDetections:
		return "raw detections"
	case TrackerOutput:
		return "tracker output"
	}
	return fmt.Sprintf("index(%d)", int(k))
}

// LoadState is the lifecycle of an index, it only ever moves from Unloaded
// to Loaded
type LoadState int

const (
	// Unloaded means the index has never been populated
	Unloaded LoadState = iota
	// Loaded means the index holds a complete annotation file
	Loaded
)

// String returns the name of the state
func (s LoadState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// NotLoadedError reports a query against an index whose load operation was
// never called
type NotLoadedError struct {
	Index IndexKind
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("%s not loaded, call the load method first", e.Index)
}

// Is makes errors.Is(err, ErrNotLoaded) match
func (e *NotLoadedError) Is(target error) bool {
	return target == ErrNotLoaded
}

// ParseError reports a malformed annotation file.  Line is 0 when the
// problem concerns the file as a whole rather than a single record
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) match
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
