package canvas

import (
	"image/color"

	"github.com/fogleman/gg"
)

type strokeState struct {
	last  Point
	dirty bool
}

type shapeState struct {
	tool   Tool
	anchor Point
	base   []byte
	dirty  bool
}

// BeginStroke starts a freehand brush or eraser stroke at p. The surface and
// the redo tail are untouched until the stroke moves.
func (e *Engine) BeginStroke(p Point) {
	if !e.ready() {
		return
	}
	if !e.tool.freehand() {
		logger.WithField("tool", e.tool).Debug("BeginStroke ignored for non-freehand tool")
		return
	}
	e.finishActive()
	e.stroke = &strokeState{last: p}
}

// ContinueStroke draws a round-capped segment from the previous point to p.
func (e *Engine) ContinueStroke(p Point) {
	if e.stroke == nil || !e.ready() {
		return
	}
	if !e.stroke.dirty {
		e.history.Discard()
	}
	c := e.color
	if e.tool == ToolEraser {
		c = e.background
	}
	e.applyPen(c)
	e.dc.DrawLine(e.stroke.last.X, e.stroke.last.Y, p.X, p.Y)
	e.dc.Stroke()
	e.stroke.last = p
	e.stroke.dirty = true
}

// EndStroke finishes the stroke, recording one snapshot if anything was drawn.
func (e *Engine) EndStroke() {
	s := e.stroke
	e.stroke = nil
	if s == nil || !e.ready() {
		return
	}
	if s.dirty {
		e.commit()
	}
}

// BeginShape anchors a line, rectangle or circle at p.
func (e *Engine) BeginShape(p Point) {
	if !e.ready() {
		return
	}
	if !e.tool.shape() {
		logger.WithField("tool", e.tool).Debug("BeginShape ignored for non-shape tool")
		return
	}
	e.finishActive()
	e.shape = &shapeState{tool: e.tool, anchor: p, base: clonePix(e.surface.Pix)}
}

// PreviewShape restores the surface as it was at BeginShape and outlines the
// shape from the anchor to p, so previews never accumulate.
func (e *Engine) PreviewShape(p Point) {
	s := e.shape
	if s == nil || !e.ready() {
		return
	}
	if !s.dirty {
		e.history.Discard()
	}
	e.restore(s.base)
	e.applyPen(e.color)
	outline(e.dc, s.tool, s.anchor, p)
	e.dc.Stroke()
	s.dirty = true
}

// EndShape keeps the last preview and records it as one snapshot.
func (e *Engine) EndShape() {
	s := e.shape
	e.shape = nil
	if s == nil || !e.ready() {
		return
	}
	if s.dirty {
		e.commit()
	}
}

// PointerDown dispatches a press to the operation matching the active tool.
func (e *Engine) PointerDown(p Point) {
	switch {
	case e.tool == ToolFill:
		e.Fill(p, e.color)
	case e.tool.freehand():
		e.BeginStroke(p)
	case e.tool.shape():
		e.BeginShape(p)
	}
}

func (e *Engine) PointerMove(p Point) {
	switch {
	case e.stroke != nil:
		e.ContinueStroke(p)
	case e.shape != nil:
		e.PreviewShape(p)
	}
}

// PointerUp ends whatever the press started. It is also the handler for the
// pointer leaving the surface.
func (e *Engine) PointerUp() {
	e.finishActive()
}

func (e *Engine) applyPen(c color.RGBA) {
	e.dc.SetColor(c)
	e.dc.SetLineWidth(e.width)
	e.dc.SetLineCapRound()
	e.dc.SetLineJoinRound()
}

func outline(dc *gg.Context, t Tool, a, b Point) {
	switch t {
	case ToolLine:
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	case ToolRect:
		dc.DrawRectangle(a.X, a.Y, b.X-a.X, b.Y-a.Y)
	case ToolCircle:
		dc.DrawCircle(a.X, a.Y, a.Dist(b))
	}
}
