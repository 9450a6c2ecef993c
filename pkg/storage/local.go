package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/JaimeStill/brandkit/pkg/lifecycle"
)

// local persists objects under a root directory. URLs are formed from BaseURL,
// which is expected to route back to the API storage download endpoint.
type local struct {
	root    string
	baseURL string
	logger  *slog.Logger
	ready   atomic.Bool
}

func newLocal(cfg *Config, logger *slog.Logger) (*local, error) {
	root := strings.TrimSpace(cfg.LocalPath)
	if root == "" {
		return nil, fmt.Errorf("local_path required")
	}

	return &local{
		root:    filepath.Join(root, cfg.ContainerName),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system")

	lc.OnStartup(func() {
		if err := os.MkdirAll(l.root, 0o755); err != nil {
			l.logger.Error("storage directory initialization failed", "error", err)
			return
		}

		l.ready.Store(true)
		l.logger.Info("storage directory ready", "root", l.root)
	})

	return nil
}

func (l *local) Ready() bool {
	return l.ready.Load()
}

func (l *local) Provider() string {
	return ProviderLocal
}

func (l *local) Upload(ctx context.Context, key string, reader io.Reader, _ string) error {
	full, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("ensure directory for %s: %w", key, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file %s: %w", key, err)
	}

	_, err = io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(full)
		return fmt.Errorf("write file %s: %w", key, err)
	}

	return nil
}

func (l *local) Download(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file %s: %w", key, err)
	}

	return f, nil
}

func (l *local) Delete(_ context.Context, key string) error {
	full, err := l.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file %s: %w", key, err)
	}

	return nil
}

func (l *local) Exists(_ context.Context, key string) (bool, error) {
	full, err := l.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat file %s: %w", key, err)
	}

	return true, nil
}

func (l *local) URL(_ context.Context, key string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return l.baseURL + "/" + clean, nil
}

func (l *local) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		objects = append(objects, Object{
			Key:          key,
			Size:         info.Size(),
			ContentType:  mime.TypeByExtension(path.Ext(key)),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return objects, nil
}

func (l *local) resolve(key string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// sanitizeKey normalizes separators and rejects keys that escape the root.
func sanitizeKey(key string) (string, error) {
	if err := validateKey(strings.TrimSpace(key)); err != nil {
		return "", err
	}

	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	key = strings.TrimLeft(key, "/")

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == "" {
		return "", ErrEmptyKey
	}
	return cleaned, nil
}
