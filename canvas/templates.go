package canvas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// maxTemplateBytes caps how much of a template source is read.
const maxTemplateBytes = 16 << 20

// ErrNotImage is returned when template data is not a recognised image format.
var ErrNotImage = errors.New("canvas: not an image")

// Template names a stampable outline image and where to load it from.
type Template struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Source string `json:"src" yaml:"src"`
}

// TemplateStatus is a Template plus whether its image has finished loading.
type TemplateStatus struct {
	Template
	Available bool `json:"available"`
}

// Loader fetches and decodes a template image.
type Loader interface {
	Load(ctx context.Context, source string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, source string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, source string) (image.Image, error) {
	return f(ctx, source)
}

type templateEntry struct {
	Template
	img *image.RGBA
}

// Templates is a registry of templates whose images load in the background.
// A template is only stampable once its image has arrived; a failed load leaves
// it unavailable. It is safe for concurrent use.
type Templates struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*templateEntry
	wg      sync.WaitGroup
}

// NewTemplates returns a registry holding ts, none of them loaded yet.
func NewTemplates(ts ...Template) *Templates {
	r := &Templates{entries: make(map[string]*templateEntry)}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any template with the same id. A replaced template
// becomes unavailable until loaded again.
func (r *Templates) Register(t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.entries[t.ID] = &templateEntry{Template: t}
}

// LoadAll starts one background load per registered template and returns
// immediately. Use Wait to block until they finish.
func (r *Templates) LoadAll(ctx context.Context, loader Loader) {
	for _, t := range r.snapshot() {
		r.wg.Add(1)
		go func(t Template) {
			defer r.wg.Done()
			log := logger.WithFields(logrus.Fields{"template": t.ID, "src": t.Source})
			img, err := loader.Load(ctx, t.Source)
			if err != nil {
				log.WithError(err).Warn("Failed to load template")
				return
			}
			if !r.provide(t, img) {
				log.Debug("Template replaced while loading, dropping image")
				return
			}
			log.Debug("Template loaded")
		}(t.Template)
	}
}

// Wait blocks until every load started by LoadAll has finished.
func (r *Templates) Wait() { r.wg.Wait() }

// Provide marks the template id as loaded with img. It reports false if id is
// not registered.
func (r *Templates) Provide(id string, img image.Image) bool {
	rgba := clone.AsRGBA(img)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	e.img = rgba
	return true
}

// provide stores img for t only if t is still registered with the same source.
func (r *Templates) provide(t Template, img image.Image) bool {
	rgba := clone.AsRGBA(img)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[t.ID]
	if !ok || e.Source != t.Source {
		return false
	}
	e.img = rgba
	return true
}

// Available reports whether id is registered and loaded.
func (r *Templates) Available(id string) bool {
	_, ok := r.Image(id)
	return ok
}

// Image returns the loaded image for id.
func (r *Templates) Image(id string) (*image.RGBA, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || e.img == nil {
		return nil, false
	}
	return e.img, true
}

// List returns every registered template in registration order.
func (r *Templates) List() []TemplateStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TemplateStatus, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		out = append(out, TemplateStatus{Template: e.Template, Available: e.img != nil})
	}
	return out
}

func (r *Templates) snapshot() []*templateEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*templateEntry, 0, len(r.order))
	for _, id := range r.order {
		e := *r.entries[id]
		out = append(out, &e)
	}
	return out
}

// FileLoader reads template sources as paths below Dir. Sources are cleaned
// so they cannot escape Dir.
type FileLoader struct {
	Dir string
}

func (l FileLoader) Load(_ context.Context, source string) (image.Image, error) {
	path := filepath.Join(l.Dir, filepath.FromSlash(filepath.Clean("/"+source)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", source, err)
	}
	return DecodeImage(data)
}

// HTTPLoader fetches template sources relative to BaseURL.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client
}

func (l HTTPLoader) Load(ctx context.Context, source string) (image.Image, error) {
	target, err := l.resolve(source)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch template %s: status %d", target, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", target, err)
	}
	return DecodeImage(data)
}

func (l HTTPLoader) resolve(source string) (string, error) {
	ref, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid template source %q: %w", source, err)
	}
	if l.BaseURL == "" {
		return ref.String(), nil
	}
	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", l.BaseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// DecodeImage sniffs data and decodes PNG, JPEG, GIF or WebP.
func DecodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("canvas: decode image: %w", err)
	}
	return img, nil
}
