package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Nubit3/trex-art/canvas"
	"gopkg.in/yaml.v3"
)

type (
	// Game is an embeddable browser mini-game.
	Game struct {
		ID          string `json:"id" yaml:"id"`
		Title       string `json:"title" yaml:"title"`
		Description string `json:"description" yaml:"description"`
		Thumbnail   string `json:"thumbnail" yaml:"thumbnail"`
		Video       string `json:"video" yaml:"video"`
		URL         string `json:"url" yaml:"url"`
		Orientation string `json:"orientation" yaml:"orientation"`
	}

	// FAQ is one canned question and answer offered by the Rexy chatbot.
	FAQ struct {
		Question string `json:"q" yaml:"q"`
		Answer   string `json:"a" yaml:"a"`
	}

	// SiteContent is the static catalog data the site serves.
	SiteContent struct {
		Games     []Game            `json:"games" yaml:"games"`
		FAQ       []FAQ             `json:"faq" yaml:"faq"`
		Templates []canvas.Template `json:"templates" yaml:"templates"`
	}
)

// Game returns the game with the given id.
func (c *SiteContent) Game(id string) (Game, bool) {
	for _, g := range c.Games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}

// DefaultContent returns the catalog the site ships with.
func DefaultContent() *SiteContent {
	return &SiteContent{
		Games: []Game{
			{
				ID:          "rexy-runner",
				Title:       "REXY RUNNER",
				Description: "The original prehistoric infinite runner. Dodge Elon, collect $REX, and survive the bear market.",
				Thumbnail:   "/rexy-runner-poster.jpg",
				Video:       "/rexy-preview.mp4",
				URL:         "/rexy-runner-game.html",
				Orientation: "landscape",
			},
			{
				ID:          "rexy-pong",
				Title:       "REXY PONG",
				Description: "Classic DeFi Defense. Deflect the bear market meteors and farm $REX tokens in the middle zone.",
				Thumbnail:   "/rexy-pong-poster.jpg",
				Video:       "/rexy-pong-preview.mp4",
				URL:         "/rexy-pong.html",
				Orientation: "landscape",
			},
			{
				ID:          "rexy-invaders",
				Title:       "REXY INVADERS",
				Description: "Bear Market Attack! Blast through the FUD fleet, defeat the Elon Mothership, and catch falling tokens.",
				Thumbnail:   "/rexy-invaders-poster.jpg",
				Video:       "/rexy-invaders-preview.mp4",
				URL:         "/rexy-invaders.html",
				Orientation: "portrait",
			},
		},
		FAQ: []FAQ{
			{Question: "Who is T-Rex?", Answer: "T-Rex is my tiny cartoon dino who explores Web3, trades coins, and stars in all the art you see here."},
			{Question: "Are these NFTs yet?", Answer: "Not all of them… yet. I’m experimenting and will drop collections in the future. Watch my X for alpha: @trex_btc."},
			{Question: "Are the drawings handmade?", Answer: "Yes! Everything starts as a sketch in my notebook. Then I scan, colour and remix them digitally."},
			{Question: "Can I commission a custom T-Rex?", Answer: "Probably yes! DM me on X with your idea, budget and timeline and I’ll roar back."},
			{Question: "What is REXTOON?", Answer: "REXTOON is the whole cartoon universe where this dino lives – comics, memes, art, and eventually full Web3 lore."},
		},
		Templates: []canvas.Template{
			{ID: "rexy-outline", Name: "Rexy", Source: "/templates/rexy-outline.png"},
			{ID: "rexy-wave-outline", Name: "Rexy waving", Source: "/templates/rexy-wave-outline.png"},
			{ID: "egg-outline", Name: "Dino egg", Source: "/templates/egg-outline.png"},
		},
	}
}

// LoadContent reads site content from a YAML file. Sections missing from the
// file keep their defaults; a missing file yields the defaults.
func LoadContent(path string) (*SiteContent, error) {
	content := DefaultContent()
	if path == "" {
		return content, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return content, nil
		}
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}

	var parsed SiteContent
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	if parsed.Games != nil {
		content.Games = parsed.Games
	}
	if parsed.FAQ != nil {
		content.FAQ = parsed.FAQ
	}
	if parsed.Templates != nil {
		content.Templates = parsed.Templates
	}
	return content, nil
}
