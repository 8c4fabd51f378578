// Package outline turns artwork into stampable line-art templates: black edge
// pixels on a transparent background.
package outline

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/segment"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
)

// Options tunes the edge pipeline.
type Options struct {
	BlurRadius   float64
	Threshold    uint8
	DilateRadius float64
}

var DefaultOptions = Options{
	BlurRadius:   1,
	Threshold:    60,
	DilateRadius: 1,
}

// Outline flattens img onto white, then runs grayscale, Gaussian blur,
// two-way Sobel edge detection, thresholding and dilation. Edge pixels come out opaque black,
// everything else fully transparent.
func Outline(img image.Image, opts Options) *image.RGBA {
	b := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(flat, flat.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.Draw(flat, flat.Bounds(), img, b.Min, xdraw.Over)

	var edges image.Image = effect.Grayscale(flat)
	if opts.BlurRadius > 0 {
		edges = blur.Gaussian(edges, opts.BlurRadius)
	}
	edges = segment.Threshold(gradient(edges), opts.Threshold)
	if opts.DilateRadius > 0 {
		edges = effect.Dilate(edges, opts.DilateRadius)
	}

	out := image.NewRGBA(flat.Bounds())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if g := color.GrayModel.Convert(edges.At(x, y)).(color.Gray); g.Y > 0 {
				out.SetRGBA(x, y, color.RGBA{A: 0xff})
			}
		}
	}
	return out
}

// gradient is the Sobel magnitude in both directions. effect.Sobel clamps
// negative responses, so dark-to-light and light-to-dark edges are taken from
// the image and its inverse and merged.
func gradient(img image.Image) image.Image {
	return blend.Lighten(effect.Sobel(img), effect.Sobel(effect.Invert(img)))
}

// IsDerived reports whether name already looks like a generated template.
func IsDerived(name string) bool {
	return strings.HasSuffix(name, "-outline.png") || strings.HasSuffix(name, "-template.png")
}

// ProcessDir writes <base><suffix>.png next to every PNG in dir that is not
// itself an outline or template. Unreadable files are skipped. It returns the
// paths written.
func ProcessDir(dir, suffix string, opts Options) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(matches)

	var written []string
	for _, in := range matches {
		name := filepath.Base(in)
		log := logrus.WithField("file", in)
		if IsDerived(name) {
			log.Info("Skipping already-processed file")
			continue
		}

		img, err := imgio.Open(in)
		if err != nil {
			log.WithError(err).Warn("Could not read image, skipping")
			continue
		}

		out := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+suffix+".png")
		if err := imgio.Save(out, Outline(img, opts), imgio.PNGEncoder()); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.WithField("output", out).Info("Outline saved")
		written = append(written, out)
	}
	return written, nil
}
