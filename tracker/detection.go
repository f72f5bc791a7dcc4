package tracker

import (
	"fmt"
	"strings"
)

// Detection represents one bounding box observation of an object in a
// single frame.  Ground truth and tracker output detections carry a track ID,
// raw detector output carries a confidence score instead
type Detection struct {
	// rect is the bounding box in ltwh format
	rect Rect
	// frame is the 1-based frame number the box was observed in
	frame int
	// confidence is the detector score, nil when not provided
	confidence *float64
	// trackID is the identity of the object, nil for raw detections
	trackID *int
	// matchedID is the ground truth identity this detection was matched
	// against, nil when unmatched
	matchedID *int
}

// DetectionOption sets an optional attribute of a Detection at construction
type DetectionOption func(*Detection)

// WithConfidence sets the detector score
func WithConfidence(conf float64) DetectionOption {
	return func(d *Detection) {
		d.confidence = &conf
	}
}

// WithTrackID sets the object identity
func WithTrackID(id int) DetectionOption {
	return func(d *Detection) {
		d.trackID = &id
	}
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(rect Rect, frame int, opts ...DetectionOption) *Detection {

	d := &Detection{
		rect:  rect,
		frame: frame,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Rect returns the bounding box of the detection
func (d *Detection) Rect() Rect {
	return d.rect
}

// Frame returns the frame number of the detection
func (d *Detection) Frame() int {
	return d.frame
}

// Left returns the left edge of the bounding box
func (d *Detection) Left() float64 {
	return d.rect.Left()
}

// Top returns the top edge of the bounding box
func (d *Detection) Top() float64 {
	return d.rect.Top()
}

// Width returns the width of the bounding box
func (d *Detection) Width() float64 {
	return d.rect.Width()
}

// Height returns the height of the bounding box
func (d *Detection) Height() float64 {
	return d.rect.Height()
}

// Right returns left + width
func (d *Detection) Right() float64 {
	return d.rect.Right()
}

// Bottom returns top + height
func (d *Detection) Bottom() float64 {
	return d.rect.Bottom()
}

// CenterX returns the horizontal center of the bounding box
func (d *Detection) CenterX() float64 {
	return d.rect.CenterX()
}

// CenterY returns the vertical center of the bounding box
func (d *Detection) CenterY() float64 {
	return d.rect.CenterY()
}

// Confidence returns the detector score and whether it was set
func (d *Detection) Confidence() (float64, bool) {
	if d.confidence == nil {
		return 0, false
	}
	return *d.confidence, true
}

// TrackID returns the object identity and whether it was set
func (d *Detection) TrackID() (int, bool) {
	if d.trackID == nil {
		return 0, false
	}
	return *d.trackID, true
}

// MatchedID returns the matched ground truth identity and whether the
// detection has been matched
func (d *Detection) MatchedID() (int, bool) {
	if d.matchedID == nil {
		return 0, false
	}
	return *d.matchedID, true
}

// WithMatch returns a copy of the detection annotated with the ground truth
// identity it was matched to.  The receiver is left unchanged
func (d *Detection) WithMatch(id int) *Detection {
	c := *d
	c.matchedID = &id
	return &c
}

// String returns a summary of the detection for debugging
func (d *Detection) String() string {

	fields := []string{
		fmt.Sprintf("frame=%4d", d.frame),
		fmt.Sprintf("bbox=(%6.1f %6.1f %6.1f %6.1f)",
			d.rect.Left(), d.rect.Top(), d.rect.Width(), d.rect.Height()),
	}

	if d.confidence != nil {
		fields = append(fields, fmt.Sprintf("conf=%5.3f", *d.confidence))
	}

	if d.trackID != nil {
		fields = append(fields, fmt.Sprintf("trid=%4d", *d.trackID))
	}

	if d.matchedID != nil {
		fields = append(fields, fmt.Sprintf("mtid=%4d", *d.matchedID))
	}

	return fmt.Sprintf("<Det: %s>", strings.Join(fields, ", "))
}
