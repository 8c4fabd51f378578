package gallery

import (
	"net/http"

	"github.com/Nubit3/trex-art/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// HandleURLs serves the URLs of one fixed collection as a JSON array of
// strings, oldest image first.
func HandleURLs(store core.GalleryStore, collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := store.List(r.Context(), collection)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error":      err,
				"collection": collection,
			}).Error("Failed to list gallery")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to list gallery"})
			return
		}
		render.JSON(w, r, core.GalleryURLs(images))
	}
}

// HandleCollection serves the full image records of the collection named in
// the URL.
func HandleCollection(store core.GalleryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := chi.URLParam(r, "collection")
		if collection == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Collection is required"})
			return
		}

		images, err := store.List(r.Context(), collection)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error":      err,
				"collection": collection,
			}).Error("Failed to list collection")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to list collection"})
			return
		}
		if images == nil {
			images = []*core.GalleryImage{}
		}
		render.JSON(w, r, images)
	}
}
