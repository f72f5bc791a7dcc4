// Package overlap measures how much ground truth boxes overlap each other
// and how many box pairs an annotator has to compare.
package overlap

import (
	"fmt"
	"strings"

	"github.com/swdee/go-motstats/tracker"
)

// Method selects the IoU definition used when counting overlaps
type Method int

const (
	// MethodRectangle computes IoU from axis-aligned corner coordinates
	MethodRectangle Method = iota
	// MethodPolygon computes IoU by clipping general polygons, it matches
	// MethodRectangle for axis-aligned boxes
	MethodPolygon
)

// String returns the name of the method
func (m Method) String() string {
	switch m {
	case MethodRectangle:
		return "rectangle"
	case MethodPolygon:
		return "polygon"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod returns the Method with the given name
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rectangle", "rect":
		return MethodRectangle, nil
	case "polygon", "poly":
		return MethodPolygon, nil
	}
	return MethodRectangle, fmt.Errorf("unknown overlap method %q", name)
}

// IoU returns the intersection over union of two ltwh boxes.  Boxes whose
// intersection has no positive width or height have an IoU of exactly 0
func IoU(a, b tracker.Rect) float64 {
	return a.CalcIoU(b)
}

// Compute returns the IoU of two boxes using method m
func (m Method) Compute(a, b tracker.Rect) float64 {
	if m == MethodPolygon {
		return PolygonIoU(RectPolygon(a), RectPolygon(b))
	}
	return IoU(a, b)
}
