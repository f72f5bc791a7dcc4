package tracker

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Tlwh (left, top, width, height) represents a 1x4 box encoding
type Tlwh [4]float64

// Tlbr (left, top, right, bottom) represents a 1x4 box encoding of the corners
type Tlbr [4]float64

// Rect represents a rectangle with Tlwh (left, top, width, height) format.
// A Rect is a value type and is never modified after creation
type Rect struct {
	tlwh Tlwh
}

// NewRect creates a new Rect with given coordinates
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		tlwh: Tlwh{left, top, width, height},
	}
}

// GenerateRectByTlbr creates a Rect from Tlbr (left, top, right, bottom) format
func GenerateRectByTlbr(tlbr Tlbr) Rect {
	return NewRect(tlbr[0], tlbr[1], tlbr[2]-tlbr[0], tlbr[3]-tlbr[1])
}

// Tlwh returns the box in (left, top, width, height) format
func (r Rect) Tlwh() Tlwh {
	return r.tlwh
}

// Left returns the x coordinate of the rectangle
func (r Rect) Left() float64 {
	return r.tlwh[0]
}

// Top returns the y coordinate of the rectangle
func (r Rect) Top() float64 {
	return r.tlwh[1]
}

// Width returns the width of the rectangle
func (r Rect) Width() float64 {
	return r.tlwh[2]
}

// Height returns the height of the rectangle
func (r Rect) Height() float64 {
	return r.tlwh[3]
}

// Right returns the bottom-right x coordinate of the rectangle
func (r Rect) Right() float64 {
	return r.tlwh[0] + r.tlwh[2]
}

// Bottom returns the bottom-right y coordinate of the rectangle
func (r Rect) Bottom() float64 {
	return r.tlwh[1] + r.tlwh[3]
}

// CenterX returns the x coordinate of the rectangle's center
func (r Rect) CenterX() float64 {
	return r.tlwh[0] + r.tlwh[2]/2
}

// CenterY returns the y coordinate of the rectangle's center
func (r Rect) CenterY() float64 {
	return r.tlwh[1] + r.tlwh[3]/2
}

// Area returns width x height
func (r Rect) Area() float64 {
	return r.tlwh[2] * r.tlwh[3]
}

// GetTlbr converts the rectangle to Tlbr (left, top, right, bottom) format
func (r Rect) GetTlbr() Tlbr {
	return Tlbr{
		r.tlwh[0],
		r.tlwh[1],
		r.tlwh[0] + r.tlwh[2],
		r.tlwh[1] + r.tlwh[3],
	}
}

// Box returns the corner form of the rectangle
func (r Rect) Box() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: r.Left(), Y: r.Top()},
		Max: r2.Vec{X: r.Right(), Y: r.Bottom()},
	}
}

// Intersection returns the overlapping rectangle in corner form and whether
// it has a positive width and height
func (r Rect) Intersection(other Rect) (r2.Box, bool) {

	a := r.Box()
	b := other.Box()

	inter := r2.Box{
		Min: r2.Vec{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y)},
		Max: r2.Vec{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y)},
	}

	if inter.Max.X <= inter.Min.X || inter.Max.Y <= inter.Min.Y {
		return inter, false
	}

	return inter, true
}

// CalcIoU calculates the Intersection over Union (IoU) with another rectangle.
// A degenerate intersection yields exactly 0
func (r Rect) CalcIoU(other Rect) float64 {

	inter, ok := r.Intersection(other)

	if !ok {
		return 0
	}

	interArea := (inter.Max.X - inter.Min.X) * (inter.Max.Y - inter.Min.Y)
	union := r.Area() + other.Area() - interArea

	if union <= 0 {
		return 0
	}

	iou := interArea / union

	// guard against float drift when boxes are identical
	if iou > 1 {
		return 1
	}

	return iou
}
