package overlap

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
	"github.com/swdee/go-motstats/tracker"
	"gonum.org/v1/gonum/spatial/r2"
)

// polygonScale converts float coordinates to clipper's fixed point integers,
// giving 1e-6 pixel resolution.  Full HD coordinates stay well inside CInt
const polygonScale = 1e6

// Polygon is a closed polygon given by its vertices in order
type Polygon []r2.Vec

// RectPolygon returns the four corners of an ltwh box in clockwise order
// (in image coordinates, y pointing down)
func RectPolygon(r tracker.Rect) Polygon {
	return Polygon{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
}

// toPath converts the polygon to clipper's integer path representation
func (p Polygon) toPath() clipper.Path {

	path := make(clipper.Path, 0, len(p))

	for _, v := range p {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(v.X * polygonScale)),
			Y: clipper.CInt(math.Round(v.Y * polygonScale)),
		})
	}

	return path
}

// pathArea returns the signed shoelace area of an integer path in scaled
// units
func pathArea(path clipper.Path) float64 {

	n := len(path)

	if n < 3 {
		return 0
	}

	// relative to the first vertex so the products stay small
	ox, oy := path[0].X, path[0].Y

	var sum float64

	for i := 1; i < n-1; i++ {
		x1, y1 := float64(path[i].X-ox), float64(path[i].Y-oy)
		x2, y2 := float64(path[i+1].X-ox), float64(path[i+1].Y-oy)
		sum += x1*y2 - x2*y1
	}

	return sum / 2
}

// pathsArea returns the total area covered by a clipper solution.  Holes are
// oriented opposite to their outer path so the signed areas cancel
func pathsArea(paths clipper.Paths) float64 {

	var sum float64

	for _, p := range paths {
		sum += pathArea(p)
	}

	return math.Abs(sum)
}

// clip runs a boolean operation between subject a and clip b
func clip(a, b clipper.Path, op clipper.ClipType) (clipper.Paths, bool) {

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(a, clipper.PtSubject, true)
	c.AddPath(b, clipper.PtClip, true)

	return c.Execute1(op, clipper.PftNonZero, clipper.PftNonZero)
}

// PolygonIoU returns the intersection over union of two simple polygons.
// Polygons with fewer than three vertices, or a failed clip, give 0
func PolygonIoU(a, b Polygon) float64 {

	if len(a) < 3 || len(b) < 3 {
		return 0
	}

	pa := a.toPath()
	pb := b.toPath()

	inter, ok := clip(pa, pb, clipper.CtIntersection)

	if !ok {
		return 0
	}

	interArea := pathsArea(inter)

	if interArea <= 0 {
		return 0
	}

	union, ok := clip(pa, pb, clipper.CtUnion)

	if !ok {
		return 0
	}

	unionArea := pathsArea(union)

	if unionArea <= 0 {
		return 0
	}

	return math.Min(interArea/unionArea, 1)
}
