package games

import (
	"net/http"

	"github.com/Nubit3/trex-art/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

func HandleList(content *core.SiteContent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games := content.Games
		if games == nil {
			games = []core.Game{}
		}
		render.JSON(w, r, games)
	}
}

func HandleGet(content *core.SiteContent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		game, ok := content.Game(id)
		if !ok {
			logrus.WithField("game_id", id).Warn("Game not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Game not found"})
			return
		}
		render.JSON(w, r, game)
	}
}
