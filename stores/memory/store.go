package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Nubit3/trex-art/core"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory gallery catalog keyed by collection and name.
type memStore struct {
	mu     sync.RWMutex
	images map[string]map[string]*core.GalleryImage
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{images: make(map[string]map[string]*core.GalleryImage)}
}

func (s *memStore) List(ctx context.Context, collection string) ([]*core.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.images[collection]
	images := make([]*core.GalleryImage, 0, len(entries))
	for _, img := range entries {
		cp := *img
		images = append(images, &cp)
	}
	core.SortGallery(images)

	logrus.WithField("collection", collection).Infof("Listed %d images", len(images))
	return images, nil
}

func (s *memStore) Add(ctx context.Context, image *core.GalleryImage) (string, error) {
	if image.Collection == "" || image.Name == "" {
		return "", fmt.Errorf("collection and name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"collection": image.Collection, "name": image.Name})

	entries, ok := s.images[image.Collection]
	if !ok {
		entries = make(map[string]*core.GalleryImage)
		s.images[image.Collection] = entries
	}

	stored := *image
	if stored.URL == "" {
		stored.URL = core.GalleryURL(stored.Collection, stored.Name)
	}
	if existing, exists := entries[image.Name]; exists {
		stored.ID = existing.ID
		log.Info("Gallery image updated")
	} else {
		stored.ID = ulid.Make().String()
		log.Info("Gallery image added")
	}
	entries[image.Name] = &stored
	return stored.ID, nil
}
