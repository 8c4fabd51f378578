package canvas

import (
	"bytes"
	"fmt"
	"io"
)

// WritePNG encodes the surface as PNG to w. An in-progress stroke or shape is
// committed first so the export matches what the user sees.
func (e *Engine) WritePNG(w io.Writer) error {
	if !e.ready() {
		return ErrNotInitialized
	}
	e.finishActive()
	if err := e.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// ExportPNG returns the surface encoded as PNG.
func (e *Engine) ExportPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
