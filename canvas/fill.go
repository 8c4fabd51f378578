package canvas

import (
	"image"
	"image/color"
)

// Fill replaces the 4-connected region of pixels exactly matching the colour at
// p with c, recording one snapshot. Filling a region with its own colour, or a
// point outside the surface, changes nothing and records nothing.
func (e *Engine) Fill(p Point, c color.Color) bool {
	if !e.ready() {
		return false
	}
	e.finishActive()
	x, y := p.pixel()
	if !floodFill(e.surface, x, y, opaque(c)) {
		return false
	}
	e.commit()
	return true
}

// floodFill uses an explicit stack so region size is bounded only by memory.
// Pixels are compared on all four channels.
func floodFill(img *image.RGBA, x, y int, fill color.RGBA) bool {
	b := img.Bounds()
	start := image.Pt(x, y)
	if !start.In(b) {
		return false
	}
	target := img.RGBAAt(x, y)
	if target == fill {
		return false
	}

	stack := []image.Point{start}
	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !pt.In(b) || img.RGBAAt(pt.X, pt.Y) != target {
			continue
		}
		img.SetRGBA(pt.X, pt.Y, fill)
		stack = append(stack,
			image.Pt(pt.X+1, pt.Y),
			image.Pt(pt.X-1, pt.Y),
			image.Pt(pt.X, pt.Y+1),
			image.Pt(pt.X, pt.Y-1),
		)
	}
	return true
}
