package core

import (
	"context"
	"path"
	"regexp"
	"sort"
	"time"
)

type (
	// GalleryImage is one publicly served picture in a named collection such as
	// "art" or "comics".
	GalleryImage struct {
		ID         string    `json:"id,omitempty"`
		Collection string    `json:"collection"`
		Name       string    `json:"name"`
		URL        string    `json:"url"`
		ModTime    time.Time `json:"modTime"`
	}

	// GalleryStore lists the images of a collection, oldest first.
	// A collection that does not exist is empty, not an error.
	GalleryStore interface {
		List(ctx context.Context, collection string) ([]*GalleryImage, error)
	}

	// GalleryCatalog is a GalleryStore whose entries are recorded explicitly
	// rather than discovered. Add is idempotent on (collection, name) and returns
	// the entry's id.
	GalleryCatalog interface {
		GalleryStore
		Add(ctx context.Context, image *GalleryImage) (string, error)
	}
)

var galleryExt = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp)$`)

// IsGalleryImage reports whether name has one of the served image extensions.
func IsGalleryImage(name string) bool {
	return galleryExt.MatchString(name)
}

// GalleryURL returns the public URL of an image in a collection.
func GalleryURL(collection, name string) string {
	return path.Join("/", collection, name)
}

// SortGallery orders images by modification time, oldest first, breaking ties
// by name.
func SortGallery(images []*GalleryImage) {
	sort.SliceStable(images, func(i, j int) bool {
		a, b := images[i], images[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime)
		}
		return a.Name < b.Name
	})
}

// GalleryURLs flattens images to their URLs.
func GalleryURLs(images []*GalleryImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls
}
