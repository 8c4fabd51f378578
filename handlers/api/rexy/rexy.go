package rexy

import (
	"net/http"
	"strconv"

	"github.com/Nubit3/trex-art/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// HandleFAQ serves every canned question the chatbot knows.
func HandleFAQ(content *core.SiteContent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faq := content.FAQ
		if faq == nil {
			faq = []core.FAQ{}
		}
		render.JSON(w, r, faq)
	}
}

// HandleAnswer serves the FAQ entry at the index given in the URL.
func HandleAnswer(content *core.SiteContent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "index")
		index, err := strconv.Atoi(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Index must be a number"})
			return
		}
		if index < 0 || index >= len(content.FAQ) {
			logrus.WithField("index", index).Warn("FAQ entry not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Question not found"})
			return
		}
		render.JSON(w, r, content.FAQ[index])
	}
}
