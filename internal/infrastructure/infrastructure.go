// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, storage, image
// generation, mail) that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/brandkit/internal/config"
	"github.com/JaimeStill/brandkit/pkg/database"
	"github.com/JaimeStill/brandkit/pkg/imagegen"
	"github.com/JaimeStill/brandkit/pkg/lifecycle"
	"github.com/JaimeStill/brandkit/pkg/logging"
	"github.com/JaimeStill/brandkit/pkg/mail"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when the kit index is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Generator imagegen.Generator
	Mailer    mail.Mailer

	logCloser io.Closer
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger, closer := logging.New(&cfg.Logging)
	return NewWithLogger(cfg, logger, closer)
}

// NewWithLogger is New with a caller-supplied logger. closer may be nil.
func NewWithLogger(cfg *config.Config, logger *slog.Logger, closer io.Closer) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		logCloser: closer,
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	infra.Storage = store

	gen, err := imagegen.New(&cfg.Generation.Image, logger)
	if err != nil {
		return nil, fmt.Errorf("image generator init failed: %w", err)
	}
	infra.Generator = gen

	mailer, err := mail.New(&cfg.Email, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer init failed: %w", err)
	}
	infra.Mailer = mailer

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator
// and tracks their readiness for health reporting.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
		i.Lifecycle.Track("database", i.Database)
	}

	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	i.Lifecycle.Track("storage", i.Storage)
	i.Lifecycle.Track("image_generator", i.Generator)

	if i.logCloser != nil {
		i.Lifecycle.OnShutdown(func() {
			<-i.Lifecycle.Context().Done()
			i.logCloser.Close()
		})
	}

	return nil
}
