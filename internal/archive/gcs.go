package archive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/pratik-mahalle/proftrack/internal/config"
)

// GCSStore writes report exports to a Google Cloud Storage bucket
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore creates a GCS store using the configured service account
// file or application default credentials.
func NewGCSStore(ctx context.Context, cfg config.ArchiveConfig) (*GCSStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Put uploads body and returns a gs:// location
func (s *GCSStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	fullKey := objectKey(s.prefix, key)

	w := s.client.Bucket(s.bucket).Object(fullKey).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gcs object %s: %w", fullKey, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close gcs object %s: %w", fullKey, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, fullKey), nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
