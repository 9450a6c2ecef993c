package brand

import (
	"context"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
)

// System defines the public contract for brand generation operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	Generate(ctx context.Context, req pipeline.Request) (*pipeline.Response, error)
	Submit(req pipeline.Request) (string, error)
	Status(id string) (*GenerationStatus, error)
	Share(ctx context.Context, req share.Request) (*share.Receipt, error)
}
