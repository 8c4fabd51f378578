package canvas

import (
	"image"
	"math"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
)

const (
	// TemplateHeightRatio is the share of the surface height a stamped template
	// occupies.
	TemplateHeightRatio = 0.65
	templateWidthRatio  = 0.9
)

// StampTemplate composites the template with the given id, centred and scaled,
// over the surface as one undoable edit. It reports false, leaving the surface
// untouched, when the engine has no surface or the template is not loaded.
func (e *Engine) StampTemplate(id string) bool {
	if !e.ready() {
		return false
	}
	if e.templates == nil {
		logger.WithField("template", id).Debug("No template registry attached")
		return false
	}
	img, ok := e.templates.Image(id)
	if !ok {
		logger.WithField("template", id).Debug("Template not available")
		return false
	}
	e.finishActive()

	dst := stampRect(e.surface.Bounds(), img.Bounds())
	if dst.Empty() {
		return false
	}
	xdraw.CatmullRom.Scale(e.surface, dst, img, img.Bounds(), xdraw.Over, nil)
	e.commit()

	logger.WithFields(logrus.Fields{"template": id, "rect": dst}).Debug("Template stamped")
	return true
}

// stampRect fits src into dst at TemplateHeightRatio of its height, preserving
// aspect ratio and never exceeding templateWidthRatio of its width, centred.
func stampRect(dst, src image.Rectangle) image.Rectangle {
	if src.Empty() || dst.Empty() {
		return image.Rectangle{}
	}
	sw, sh := float64(src.Dx()), float64(src.Dy())
	scale := float64(dst.Dy()) * TemplateHeightRatio / sh
	if maxW := float64(dst.Dx()) * templateWidthRatio; sw*scale > maxW {
		scale = maxW / sw
	}
	w := int(math.Round(sw * scale))
	h := int(math.Round(sh * scale))
	x := (dst.Dx() - w) / 2
	y := (dst.Dy() - h) / 2
	return image.Rect(x, y, x+w, y+h).Add(dst.Min)
}
