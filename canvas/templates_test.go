package canvas

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestTemplatesRegistry(t *testing.T) {
	r := NewTemplates(
		Template{ID: "rex", Name: "Rex", Source: "/templates/rex.png"},
		Template{ID: "egg", Name: "Egg", Source: "/templates/egg.png"},
	)

	if r.Available("rex") {
		t.Error("expected template to be unavailable before loading")
	}
	if !r.Provide("rex", solidImage(4, 4, red)) {
		t.Fatal("expected Provide to accept a registered id")
	}
	if r.Provide("missing", solidImage(1, 1, red)) {
		t.Error("expected Provide to reject an unknown id")
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List length mismatch: got %d, want 2", len(list))
	}
	if list[0].ID != "rex" || !list[0].Available {
		t.Errorf("first entry mismatch: got %+v", list[0])
	}
	if list[1].ID != "egg" || list[1].Available {
		t.Errorf("second entry mismatch: got %+v", list[1])
	}

	r.Register(Template{ID: "rex", Name: "Rex v2", Source: "/templates/rex2.png"})
	if r.Available("rex") {
		t.Error("expected re-registered template to need loading again")
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("List length after re-register mismatch: got %d, want 2", got)
	}
}

func TestTemplatesLoadAllDropsReplacedSource(t *testing.T) {
	r := NewTemplates(Template{ID: "a", Source: "old.png"})
	started := make(chan struct{})
	release := make(chan struct{})
	loader := LoaderFunc(func(_ context.Context, source string) (image.Image, error) {
		close(started)
		<-release
		return solidImage(2, 2, red), nil
	})

	r.LoadAll(context.Background(), loader)
	<-started
	r.Register(Template{ID: "a", Source: "new.png"})
	close(release)
	r.Wait()

	if r.Available("a") {
		t.Error("expected a load of the replaced source to leave the template unavailable")
	}
}

func TestTemplatesLoadAll(t *testing.T) {
	r := NewTemplates(
		Template{ID: "ok", Source: "ok.png"},
		Template{ID: "broken", Source: "broken.png"},
	)
	loader := LoaderFunc(func(_ context.Context, source string) (image.Image, error) {
		if source == "broken.png" {
			return nil, errors.New("boom")
		}
		return solidImage(2, 2, red), nil
	})

	r.LoadAll(context.Background(), loader)
	r.Wait()

	if !r.Available("ok") {
		t.Error("expected successfully loaded template to be available")
	}
	if r.Available("broken") {
		t.Error("expected failed template to stay unavailable")
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "rex.png"), encodePNG(t, solidImage(3, 5, red)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := FileLoader{Dir: dir}
	img, err := l.Load(context.Background(), "/templates/rex.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
		t.Errorf("bounds mismatch: got %v, want 3x5", b)
	}

	if _, err := l.Load(context.Background(), "notes.txt"); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
	if _, err := l.Load(context.Background(), "missing.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestHTTPLoader(t *testing.T) {
	body := encodePNG(t, solidImage(6, 2, red))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/templates/rex.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	l := HTTPLoader{BaseURL: srv.URL, Client: srv.Client()}
	img, err := l.Load(context.Background(), "/templates/rex.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 2 {
		t.Errorf("bounds mismatch: got %v, want 6x2", b)
	}

	if _, err := l.Load(context.Background(), "/templates/missing.png"); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

func TestStampTemplate(t *testing.T) {
	r := NewTemplates(Template{ID: "rex", Source: "rex.png"})
	r.Provide("rex", solidImage(10, 20, red))
	e := newEngine(t, 200, 100, WithTemplates(r))
	initial := clonePix(e.Surface().Pix)

	if !e.StampTemplate("rex") {
		t.Fatal("expected StampTemplate to succeed")
	}

	if got := pixelAt(e, 100, 50); got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("stamped centre pixel mismatch: got %v, want red", got)
	}
	if got := pixelAt(e, 10, 50); got != White {
		t.Errorf("pixel outside stamp mismatch: got %v, want %v", got, White)
	}
	if e.HistoryLen() != 2 {
		t.Errorf("HistoryLen mismatch: got %d, want 2", e.HistoryLen())
	}

	e.Undo()
	if !bytes.Equal(e.Surface().Pix, initial) {
		t.Error("expected Undo to remove the stamp")
	}
}

func TestStampTemplateKeepsStrokesUnderTransparency(t *testing.T) {
	tpl := image.NewRGBA(image.Rect(0, 0, 20, 20))
	r := NewTemplates(Template{ID: "ring", Source: "ring.png"})
	r.Provide("ring", tpl)
	e := newEngine(t, 100, 100, WithTemplates(r))
	e.Fill(Pt(1, 1), red)

	e.StampTemplate("ring")

	if got := pixelAt(e, 50, 50); got != red {
		t.Errorf("transparent template should not cover drawing: got %v, want %v", got, red)
	}
}

func TestStampTemplateUnavailable(t *testing.T) {
	r := NewTemplates(Template{ID: "rex", Source: "rex.png"})
	e := newEngine(t, 50, 50, WithTemplates(r))

	if e.StampTemplate("rex") {
		t.Error("expected unloaded template to be rejected")
	}
	if e.StampTemplate("nope") {
		t.Error("expected unknown template to be rejected")
	}
	if e.HistoryLen() != 1 {
		t.Errorf("HistoryLen mismatch: got %d, want 1", e.HistoryLen())
	}

	bare := newEngine(t, 50, 50)
	if bare.StampTemplate("rex") {
		t.Error("expected engine without registry to reject stamping")
	}
}

func TestStampRect(t *testing.T) {
	tests := []struct {
		name     string
		dst, src image.Rectangle
		want     image.Rectangle
	}{
		{
			name: "height bound",
			dst:  image.Rect(0, 0, 200, 100),
			src:  image.Rect(0, 0, 10, 20),
			want: image.Rect(83, 17, 116, 82),
		},
		{
			name: "width bound",
			dst:  image.Rect(0, 0, 100, 100),
			src:  image.Rect(0, 0, 200, 10),
			want: image.Rect(5, 47, 95, 52),
		},
		{
			name: "empty source",
			dst:  image.Rect(0, 0, 100, 100),
			src:  image.Rectangle{},
			want: image.Rectangle{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stampRect(tt.dst, tt.src); got != tt.want {
				t.Errorf("stampRect mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeImageRejectsText(t *testing.T) {
	if _, err := DecodeImage([]byte("hello world")); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
}
