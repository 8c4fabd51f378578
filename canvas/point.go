package canvas

import "math"

// Point is a position in either display or surface space; which one depends on
// the caller. The engine's drawing methods always take surface-space points.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// pixel returns the integer pixel containing p.
func (p Point) pixel() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// MapToSurface maps a point on a displayed element of displayW×displayH onto a
// backing surface of surfaceW×surfaceH. Each axis is scaled independently since
// the element may be stretched non-uniformly. A degenerate display size leaves
// the point unchanged.
func MapToSurface(p Point, displayW, displayH float64, surfaceW, surfaceH int) Point {
	if displayW <= 0 || displayH <= 0 {
		return p
	}
	return Point{
		X: p.X * float64(surfaceW) / displayW,
		Y: p.Y * float64(surfaceH) / displayH,
	}
}
