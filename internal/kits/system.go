package kits

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/pagination"
)

// System defines the public contract for the kit archive. It satisfies
// pipeline.Archiver so completed runs are archived automatically.
type System interface {
	Handler() *Handler

	// Indexed reports whether listing is backed by a database.
	Indexed() bool

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Kit], error)

	Find(ctx context.Context, id uuid.UUID) (*Detail, error)
	Save(ctx context.Context, resp *pipeline.Response) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Prune removes index rows older than cutoff and reports how many.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
