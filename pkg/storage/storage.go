// Package storage provides object storage for generated brand assets with
// Azure Blob Storage, S3-compatible, and local filesystem implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/brandkit/pkg/lifecycle"
)

// MaxListCap bounds the number of objects a single listing request may return.
const MaxListCap int32 = 1000

// Object describes a stored object.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// System manages object storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the container or bucket.
	Start(lc *lifecycle.Coordinator) error
	// Ready reports whether the startup hook completed successfully.
	Ready() bool
	// Provider returns the configured provider name.
	Provider() string
	// Upload streams data to the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns a retrievable URL for the object at key.
	URL(ctx context.Context, key string) (string, error)
	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// New creates the storage system selected by cfg.Provider.
// Clients are constructed but no connection is made until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderS3:
		return newS3(cfg, logger)
	case ProviderLocal:
		return newLocal(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// ListOlderThan returns the objects under prefix last modified before cutoff.
func ListOlderThan(ctx context.Context, sys System, prefix string, cutoff time.Time) ([]Object, error) {
	objects, err := sys.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	older := make([]Object, 0, len(objects))
	for _, o := range objects {
		if o.LastModified.Before(cutoff) {
			older = append(older, o)
		}
	}
	return older, nil
}

// ParseMaxResults parses a max_results query value, defaulting to fallback
// when empty and clamping to MaxListCap.
func ParseMaxResults(s string, fallback int32) (int32, error) {
	if s == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, ErrInvalidMaxResults
	}

	return min(int32(n), MaxListCap), nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
