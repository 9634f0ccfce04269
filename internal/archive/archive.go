package archive

import (
	"context"
	"fmt"
	"path"

	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
)

// New builds the configured report archive. It returns nil, nil when no
// backend is configured.
func New(ctx context.Context, cfg config.ArchiveConfig) (report.Archive, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "gcs":
		store, err := NewGCSStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported archive backend: %s", cfg.Backend)
	}
}

func objectKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
