//go:build js && wasm

// Command doodle is the browser front end of the drawing engine. Build it with
//
//	GOOS=js GOARCH=wasm go build -o frontend/doodle.wasm ./cmd/doodle
//
// and serve it next to wasm_exec.js. It binds to the <canvas id="doodle-canvas">
// element and exposes toolbar actions on window.rextoon.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"syscall/js"

	"github.com/Nubit3/trex-art/canvas"
	"github.com/sirupsen/logrus"
)

type app struct {
	eng       *canvas.Engine
	templates *canvas.Templates

	window js.Value
	el     js.Value
	ctx2d  js.Value
	image  js.Value

	dirty bool
	funcs []js.Func
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	window := js.Global()
	el := window.Get("document").Call("getElementById", "doodle-canvas")
	if el.IsNull() {
		logrus.Error("doodle: no #doodle-canvas element")
		return
	}

	registry := canvas.NewTemplates()
	a := &app{
		eng:       canvas.New(canvas.WithTemplates(registry)),
		templates: registry,
		window:    window,
		el:        el,
		ctx2d:     el.Call("getContext", "2d"),
	}
	a.resize()
	a.bind()
	go a.loadTemplates(backendOrigin(window))

	a.requestFrame()
	select {}
}

// resize matches the surface to the element's on-screen size. Like any canvas
// resize it starts a fresh drawing.
func (a *app) resize() {
	rect := a.el.Call("getBoundingClientRect")
	w, h := rect.Get("width").Int(), rect.Get("height").Int()
	a.el.Set("width", w)
	a.el.Set("height", h)
	if a.eng.Initialize(w, h) == nil {
		a.image = js.Undefined()
		return
	}
	a.image = a.ctx2d.Call("createImageData", w, h)
	a.dirty = true
}

func (a *app) render() {
	surface := a.eng.Surface()
	if surface == nil || a.image.IsUndefined() {
		return
	}
	js.CopyBytesToJS(a.image.Get("data"), surface.Pix)
	a.ctx2d.Call("putImageData", a.image, 0, 0)
}

func (a *app) requestFrame() {
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		if a.dirty {
			a.render()
			a.dirty = false
		}
		a.window.Call("requestAnimationFrame", frame)
		return nil
	})
	a.funcs = append(a.funcs, frame)
	a.window.Call("requestAnimationFrame", frame)
}

// point converts a pointer event to surface coordinates.
func (a *app) point(ev js.Value) canvas.Point {
	rect := a.el.Call("getBoundingClientRect")
	p := canvas.Pt(
		ev.Get("clientX").Float()-rect.Get("left").Float(),
		ev.Get("clientY").Float()-rect.Get("top").Float(),
	)
	return a.eng.MapPoint(p, rect.Get("width").Float(), rect.Get("height").Float())
}

func (a *app) on(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		ev.Call("preventDefault")
		fn(ev)
		return nil
	})
	a.funcs = append(a.funcs, f)
	target.Call("addEventListener", event, f)
}

func (a *app) export(fn func(args []js.Value) any) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		return fn(args)
	})
	a.funcs = append(a.funcs, f)
	return f
}

func (a *app) bind() {
	a.el.Get("style").Set("touchAction", "none")

	a.on(a.el, "pointerdown", func(ev js.Value) {
		a.el.Call("setPointerCapture", ev.Get("pointerId"))
		a.eng.PointerDown(a.point(ev))
		a.dirty = true
	})
	a.on(a.el, "pointermove", func(ev js.Value) {
		if !a.eng.Active() {
			return
		}
		a.eng.PointerMove(a.point(ev))
		a.dirty = true
	})
	for _, name := range []string{"pointerup", "pointerleave", "pointercancel"} {
		a.on(a.el, name, func(js.Value) {
			a.eng.PointerUp()
			a.dirty = true
		})
	}
	a.on(a.window, "resize", func(js.Value) { a.resize() })

	api := js.Global().Get("Object").New()
	api.Set("selectTool", a.export(func(args []js.Value) any {
		t, err := canvas.ParseTool(args[0].String())
		if err != nil {
			logrus.WithError(err).Warn("doodle: selectTool")
			return false
		}
		a.eng.SelectTool(t)
		a.dirty = true
		return true
	}))
	api.Set("setColor", a.export(func(args []js.Value) any {
		c, err := canvas.ParseHex(args[0].String())
		if err != nil {
			logrus.WithError(err).Warn("doodle: setColor")
			return false
		}
		a.eng.SetColor(c)
		return true
	}))
	api.Set("setStrokeWidth", a.export(func(args []js.Value) any {
		a.eng.SetStrokeWidth(args[0].Float())
		return a.eng.StrokeWidth()
	}))
	api.Set("undo", a.export(func([]js.Value) any {
		a.dirty = true
		return a.eng.Undo()
	}))
	api.Set("redo", a.export(func([]js.Value) any {
		a.dirty = true
		return a.eng.Redo()
	}))
	api.Set("clear", a.export(func([]js.Value) any {
		a.eng.Clear()
		a.dirty = true
		return nil
	}))
	api.Set("stamp", a.export(func(args []js.Value) any {
		a.dirty = true
		return a.eng.StampTemplate(args[0].String())
	}))
	api.Set("download", a.export(func([]js.Value) any {
		if err := a.download(); err != nil {
			logrus.WithError(err).Error("doodle: download")
			return false
		}
		return true
	}))
	api.Set("templates", a.export(func([]js.Value) any {
		out := js.Global().Get("Array").New()
		for _, t := range a.templates.List() {
			item := js.Global().Get("Object").New()
			item.Set("id", t.ID)
			item.Set("name", t.Name)
			item.Set("available", t.Available)
			out.Call("push", item)
		}
		return out
	}))
	palette := js.Global().Get("Array").New()
	for _, hex := range canvas.Palette {
		palette.Call("push", hex)
	}
	api.Set("palette", palette)

	a.window.Set("rextoon", api)
}

func (a *app) download() error {
	data, err := a.eng.ExportPNG()
	if err != nil {
		return err
	}
	a.dirty = true

	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	parts := js.Global().Get("Array").New()
	parts.Call("push", arr)
	opts := js.Global().Get("Object").New()
	opts.Set("type", "image/png")
	blob := js.Global().Get("Blob").New(parts, opts)

	url := js.Global().Get("URL").Call("createObjectURL", blob)
	defer js.Global().Get("URL").Call("revokeObjectURL", url)

	link := js.Global().Get("document").Call("createElement", "a")
	link.Set("href", url)
	link.Set("download", canvas.ExportFilename)
	link.Call("click")
	return nil
}

// backendOrigin returns the API origin the server wrote into
// <body data-backend>, falling back to the page's own origin.
func backendOrigin(window js.Value) string {
	loc := window.Get("location")
	host := window.Get("document").Get("body").Get("dataset").Get("backend")
	if host.Type() != js.TypeString || host.String() == "" || strings.HasPrefix(host.String(), "__") {
		return loc.Get("origin").String()
	}
	if h := host.String(); strings.Contains(h, "://") {
		return strings.TrimSuffix(h, "/")
	}
	return loc.Get("protocol").String() + "//" + host.String()
}

// loadTemplates fetches the template catalog and starts loading every image.
// It runs off the event loop since net/http blocks on fetch.
func (a *app) loadTemplates(origin string) {
	resp, err := http.Get(origin + "/api/templates")
	if err != nil {
		logrus.WithError(err).Warn("doodle: failed to fetch template catalog")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("doodle: failed to fetch template catalog")
		return
	}

	var catalog []canvas.Template
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		logrus.WithError(fmt.Errorf("decode template catalog: %w", err)).Warn("doodle: bad template catalog")
		return
	}
	for _, t := range catalog {
		a.templates.Register(t)
	}
	a.templates.LoadAll(context.Background(), canvas.HTTPLoader{BaseURL: origin})
	a.templates.Wait()

	a.window.Call("dispatchEvent", js.Global().Get("Event").New("rextoon:templates"))
}
