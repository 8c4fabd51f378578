package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Nubit3/trex-art/core"
	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
}

// NewStore creates a gallery store that lists the image files found in
// <basePath>/<collection>.
func NewStore(basePath string) *fsStore {
	return &fsStore{basePath: basePath}
}

func (s *fsStore) collectionPath(collection string) (string, error) {
	if collection == "" || collection == "." || collection == ".." || path.Base(collection) != collection {
		return "", fmt.Errorf("invalid collection %q", collection)
	}
	return filepath.Join(s.basePath, collection), nil
}

func (s *fsStore) List(ctx context.Context, collection string) ([]*core.GalleryImage, error) {
	dir, err := s.collectionPath(collection)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"collection": collection, "path": dir})

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("Collection directory does not exist, returning empty list.")
			return []*core.GalleryImage{}, nil
		}
		log.WithError(err).Error("Failed to read collection directory")
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	images := make([]*core.GalleryImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !core.IsGalleryImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.WithError(err).Warnf("Failed to get file info for %s, skipping", entry.Name())
			continue
		}
		images = append(images, &core.GalleryImage{
			Collection: collection,
			Name:       entry.Name(),
			URL:        core.GalleryURL(collection, entry.Name()),
			ModTime:    info.ModTime(),
		})
	}
	core.SortGallery(images)

	log.Infof("Listed %d images", len(images))
	return images, nil
}
