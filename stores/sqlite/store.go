package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Nubit3/trex-art/core"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite gallery catalog.
func NewStore(dataSourceName string) *sqliteStore {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logrus.Fatalf("failed to open sqlite database: %v", err)
	}

	tableStmt := `
	CREATE TABLE IF NOT EXISTS gallery_images (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		mod_time DATETIME,
		UNIQUE (collection, name)
	);`
	if _, err = db.Exec(tableStmt); err != nil {
		logrus.Fatalf("failed to create gallery_images table: %v", err)
	}

	return &sqliteStore{db}
}

// Close releases the underlying database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) List(ctx context.Context, collection string) ([]*core.GalleryImage, error) {
	log := logrus.WithField("collection", collection)
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, url, mod_time FROM gallery_images WHERE collection = ?", collection)
	if err != nil {
		log.WithError(err).Error("Failed to query gallery images")
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	defer rows.Close()

	images := []*core.GalleryImage{}
	for rows.Next() {
		img := core.GalleryImage{Collection: collection}
		if err := rows.Scan(&img.ID, &img.Name, &img.URL, &img.ModTime); err != nil {
			return nil, fmt.Errorf("failed to scan gallery image: %w", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	core.SortGallery(images)

	log.Infof("Listed %d images", len(images))
	return images, nil
}

func (s *sqliteStore) Add(ctx context.Context, image *core.GalleryImage) (string, error) {
	if image.Collection == "" || image.Name == "" {
		return "", fmt.Errorf("collection and name are required")
	}
	url := image.URL
	if url == "" {
		url = core.GalleryURL(image.Collection, image.Name)
	}
	modTime := image.ModTime.UTC()
	if image.ModTime.IsZero() {
		modTime = time.Now().UTC()
	}
	log := logrus.WithFields(logrus.Fields{"collection": image.Collection, "name": image.Name})

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, "SELECT id FROM gallery_images WHERE collection = ? AND name = ?", image.Collection, image.Name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = ulid.Make().String()
		_, err = tx.ExecContext(ctx, "INSERT INTO gallery_images (id, collection, name, url, mod_time) VALUES (?, ?, ?, ?, ?)", id, image.Collection, image.Name, url, modTime)
	case err == nil:
		_, err = tx.ExecContext(ctx, "UPDATE gallery_images SET url = ?, mod_time = ? WHERE id = ?", url, modTime, id)
	}
	if err != nil {
		log.WithError(err).Error("Failed to save gallery image")
		return "", fmt.Errorf("failed to save gallery image %s/%s: %w", image.Collection, image.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	log.WithField("id", id).Info("Gallery image saved")
	return id, nil
}
