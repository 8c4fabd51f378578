package canvas

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
)

const (
	DefaultStrokeWidth = 4
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 40

	// ExportFilename is the suggested name for downloaded drawings.
	ExportFilename = "rextoon-doodle.png"
)

// ErrNotInitialized is returned by operations that need a surface when the
// engine has none.
var ErrNotInitialized = errors.New("canvas: surface not initialized")

var logger = logrus.WithField("component", "canvas")

// Border is an optional frame painted around the surface on initialisation and
// after Clear.
type Border struct {
	Width int
	Color color.RGBA
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackground sets the colour the surface is cleared to. The eraser paints
// with this colour.
func WithBackground(c color.Color) Option {
	return func(e *Engine) { e.background = opaque(c) }
}

func WithBorder(b Border) Option {
	return func(e *Engine) { e.border = b }
}

// WithHistoryLimit bounds the number of stored snapshots.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.historyLimit = n }
}

// WithTemplates attaches a template registry used by StampTemplate.
func WithTemplates(t *Templates) Option {
	return func(e *Engine) { e.templates = t }
}

// Engine owns a drawing surface and everything that edits it.
type Engine struct {
	surface *image.RGBA
	dc      *gg.Context
	history *History

	background   color.RGBA
	border       Border
	historyLimit int
	templates    *Templates

	tool  Tool
	color color.RGBA
	width float64

	stroke *strokeState
	shape  *shapeState
}

// New returns an engine with no surface. Call Initialize before drawing.
func New(opts ...Option) *Engine {
	e := &Engine{
		background:   White,
		historyLimit: DefaultHistoryLimit,
		tool:         ToolBrush,
		color:        Black,
		width:        DefaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize (re)creates a width×height surface cleared to the background and
// resets history to a single snapshot of it. A non-positive size tears the
// engine down instead and returns nil.
func (e *Engine) Initialize(width, height int) *image.RGBA {
	e.finishActive()
	if width <= 0 || height <= 0 {
		logger.WithFields(logrus.Fields{"width": width, "height": height}).Debug("Ignoring zero-sized surface")
		e.Teardown()
		return nil
	}

	e.surface = image.NewRGBA(image.Rect(0, 0, width, height))
	e.dc = gg.NewContextForRGBA(e.surface)
	e.paintBackground()
	e.history = NewHistory(e.historyLimit)
	e.history.Reset(e.surface.Pix)

	logger.WithFields(logrus.Fields{"width": width, "height": height}).Debug("Surface initialized")
	return e.surface
}

// Teardown releases the surface and history. Every drawing operation is a no-op
// until the next Initialize.
func (e *Engine) Teardown() {
	e.stroke = nil
	e.shape = nil
	e.surface = nil
	e.dc = nil
	e.history = nil
}

func (e *Engine) ready() bool { return e.surface != nil }

// Surface returns the live surface, or nil when uninitialized. Callers must not
// retain it across Initialize.
func (e *Engine) Surface() *image.RGBA { return e.surface }

// Size returns the surface dimensions.
func (e *Engine) Size() (int, int) {
	if !e.ready() {
		return 0, 0
	}
	b := e.surface.Bounds()
	return b.Dx(), b.Dy()
}

// MapPoint maps a display-space point onto this engine's surface.
func (e *Engine) MapPoint(p Point, displayW, displayH float64) Point {
	w, h := e.Size()
	return MapToSurface(p, displayW, displayH, w, h)
}

// SelectTool changes the active tool. An in-progress stroke or shape is
// committed first.
func (e *Engine) SelectTool(t Tool) {
	if t == e.tool {
		return
	}
	e.finishActive()
	e.tool = t
}

func (e *Engine) Tool() Tool { return e.tool }

// SetColor sets the drawing colour. Transparency is dropped.
func (e *Engine) SetColor(c color.Color) { e.color = opaque(c) }

func (e *Engine) Color() color.RGBA { return e.color }

// SetStrokeWidth sets the line width, clamped to [MinStrokeWidth, MaxStrokeWidth].
func (e *Engine) SetStrokeWidth(w float64) {
	switch {
	case w < MinStrokeWidth || math.IsNaN(w):
		w = MinStrokeWidth
	case w > MaxStrokeWidth:
		w = MaxStrokeWidth
	}
	e.width = w
}

func (e *Engine) StrokeWidth() float64 { return e.width }

func (e *Engine) Background() color.RGBA { return e.background }

// Templates returns the attached registry, if any.
func (e *Engine) Templates() *Templates { return e.templates }

// Active reports whether a stroke or shape is in progress.
func (e *Engine) Active() bool { return e.stroke != nil || e.shape != nil }

func (e *Engine) CanUndo() bool { return e.history != nil && e.history.CanUndo() }

func (e *Engine) CanRedo() bool { return e.history != nil && e.history.CanRedo() }

// HistoryLen returns the number of stored snapshots.
func (e *Engine) HistoryLen() int {
	if e.history == nil {
		return 0
	}
	return e.history.Len()
}

// Undo restores the previous snapshot. It reports whether anything changed.
func (e *Engine) Undo() bool {
	if !e.ready() {
		return false
	}
	e.finishActive()
	state, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(state)
	return true
}

// Redo re-applies the next snapshot. It reports whether anything changed.
func (e *Engine) Redo() bool {
	if !e.ready() {
		return false
	}
	e.finishActive()
	state, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(state)
	return true
}

// Clear repaints the background (and border) as a single undoable edit.
func (e *Engine) Clear() {
	if !e.ready() {
		return
	}
	e.finishActive()
	e.paintBackground()
	e.commit()
}

func (e *Engine) paintBackground() {
	e.dc.SetColor(e.background)
	e.dc.Clear()

	b := e.border.Width
	if b <= 0 {
		return
	}
	w, h := float64(e.surface.Bounds().Dx()), float64(e.surface.Bounds().Dy())
	bw := float64(b)
	e.dc.SetColor(e.border.Color)
	e.dc.DrawRectangle(0, 0, w, bw)
	e.dc.DrawRectangle(0, h-bw, w, bw)
	e.dc.DrawRectangle(0, 0, bw, h)
	e.dc.DrawRectangle(w-bw, 0, bw, h)
	e.dc.Fill()
}

// commit records the visible surface as the newest snapshot.
func (e *Engine) commit() {
	e.history.Push(e.surface.Pix)
}

func (e *Engine) restore(state []byte) {
	copy(e.surface.Pix, state)
}

// finishActive commits any in-progress stroke or shape.
func (e *Engine) finishActive() {
	if e.stroke != nil {
		e.EndStroke()
	}
	if e.shape != nil {
		e.EndShape()
	}
}
