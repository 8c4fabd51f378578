package templates

import (
	"net/http"

	"github.com/Nubit3/trex-art/canvas"
	"github.com/go-chi/render"
)

// HandleList serves the doodle template catalog with each template's load state.
func HandleList(registry *canvas.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, registry.List())
	}
}
