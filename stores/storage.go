package stores

import (
	"context"
	"fmt"
	"os"

	"github.com/Nubit3/trex-art/core"
	"github.com/Nubit3/trex-art/stores/aws"
	"github.com/Nubit3/trex-art/stores/filesystem"
	"github.com/Nubit3/trex-art/stores/memory"
	"github.com/Nubit3/trex-art/stores/sqlite"
	"github.com/sirupsen/logrus"
)

// Collections are the gallery collections the site serves.
var Collections = []string{"art", "comics"}

// PublicDir returns the directory static site assets are served from.
func PublicDir() string {
	if dir := os.Getenv("PUBLIC_DIR"); dir != "" {
		return dir
	}
	return "./public"
}

// GetStore builds the gallery store selected by STORAGE_TYPE.
func GetStore() core.GalleryStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.GalleryStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "memory":
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "rextoon.db"
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		publicBaseURL := os.Getenv("S3_PUBLIC_BASE_URL")
		storageField["bucketName"] = bucketName
		storageField["publicBaseURL"] = publicBaseURL
		store = aws.NewStore(bucketName, publicBaseURL)
	default:
		basePath := PublicDir()
		storageField["storageType"] = "filesystem"
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	}
	logrus.WithFields(storageField).Info("Use storage")

	if catalog, ok := store.(core.GalleryCatalog); ok {
		if dir := os.Getenv("IMPORT_DIR"); dir != "" {
			if _, err := Import(context.Background(), catalog, dir, Collections); err != nil {
				logrus.WithError(err).WithField("importDir", dir).Error("Failed to import gallery")
			}
		}
	}
	return store
}

// Import records every image found on disk below dir/<collection> in catalog.
// Re-importing the same files updates them in place.
func Import(ctx context.Context, catalog core.GalleryCatalog, dir string, collections []string) (int, error) {
	source := filesystem.NewStore(dir)
	count := 0
	for _, collection := range collections {
		images, err := source.List(ctx, collection)
		if err != nil {
			return count, fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		for _, img := range images {
			if _, err := catalog.Add(ctx, img); err != nil {
				return count, fmt.Errorf("failed to import %s/%s: %w", collection, img.Name, err)
			}
			count++
		}
	}
	logrus.WithFields(logrus.Fields{"importDir": dir, "count": count}).Info("Imported gallery")
	return count, nil
}
