package aws

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Nubit3/trex-art/core"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

type s3Store struct {
	client        s3.ListObjectsV2APIClient
	bucket        string
	publicBaseURL string
}

// NewStore creates a gallery store listing objects under <collection>/ in an
// S3 bucket. Image URLs are built from publicBaseURL when set, otherwise they
// are site-relative and the bucket is expected to be mounted behind the site.
func NewStore(bucketName, publicBaseURL string) *s3Store {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logrus.Fatalf("unable to load SDK config, %v", err)
	}
	return newStore(s3.NewFromConfig(cfg), bucketName, publicBaseURL)
}

func newStore(client s3.ListObjectsV2APIClient, bucketName, publicBaseURL string) *s3Store {
	return &s3Store{
		client:        client,
		bucket:        bucketName,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *s3Store) List(ctx context.Context, collection string) ([]*core.GalleryImage, error) {
	if collection == "" || path.Base(collection) != collection {
		return nil, fmt.Errorf("invalid collection %q", collection)
	}
	prefix := collection + "/"
	log := logrus.WithFields(logrus.Fields{"bucket": s.bucket, "prefix": prefix})

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	images := []*core.GalleryImage{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to list objects")
			return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
		}
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			name := strings.TrimPrefix(key, prefix)
			if name == "" || strings.Contains(name, "/") || !core.IsGalleryImage(name) {
				continue
			}
			images = append(images, &core.GalleryImage{
				Collection: collection,
				Name:       name,
				URL:        s.objectURL(collection, name, key),
				ModTime:    aws.ToTime(object.LastModified),
			})
		}
	}
	core.SortGallery(images)

	log.Infof("Listed %d images", len(images))
	return images, nil
}

func (s *s3Store) objectURL(collection, name, key string) string {
	if s.publicBaseURL == "" {
		return core.GalleryURL(collection, name)
	}
	return s.publicBaseURL + "/" + key
}
