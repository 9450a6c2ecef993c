package brand

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/internal/share"
	"github.com/JaimeStill/brandkit/pkg/handlers"
)

// ErrJobNotFound is returned for unknown or already completed job ids.
var ErrJobNotFound = fmt.Errorf("job %w", pipeline.ErrJobNotFound)

// MapHTTPStatus maps brand domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, pipeline.ErrJobNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, pipeline.ErrInvalidRequest) ||
		errors.Is(err, handlers.ErrInvalidBody) {
		return http.StatusBadRequest
	}
	if errors.Is(err, share.ErrInvalidEmail) {
		return share.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
