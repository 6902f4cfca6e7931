package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"league-tracker/internal/config"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var blobIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BlobStore keeps blog image uploads as local files named by nanoid.
// A post's imageUrl is the local blob reference "/blobs/<id>".
type BlobStore struct {
	dir    string
	logger zerolog.Logger
}

func NewBlobStore(cfg *config.Config, logger zerolog.Logger) (*BlobStore, error) {
	if err := os.MkdirAll(cfg.BlobDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &BlobStore{dir: cfg.BlobDir, logger: logger}, nil
}

// Save writes the bytes under a fresh id and returns the id.
func (b *BlobStore) Save(data []byte) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate blob id: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.dir, id), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	b.logger.Debug().Str("id", id).Int("bytes", len(data)).Msg("blob stored")
	return id, nil
}

// Path resolves a blob id to its file path, rejecting ids that do not
// look like nanoids so callers cannot escape the blob directory.
func (b *BlobStore) Path(id string) (string, error) {
	if !blobIDPattern.MatchString(id) {
		return "", fmt.Errorf("invalid blob id %q", id)
	}
	path := filepath.Join(b.dir, id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("blob %s not found: %w", id, err)
	}
	return path, nil
}
