// Package brand exposes the brand generation pipeline over HTTP: synchronous
// and background generation, job status, option catalogs, and email sharing.
package brand

import (
	"net/http"
	"time"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/handlers"
)

// APIResponse wraps catalog, status, and share payloads.
type APIResponse[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GenerationStatus is the polling view of a running or failed job.
type GenerationStatus struct {
	JobID        string  `json:"job_id"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	CurrentStep  string  `json:"current_step"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// AsyncAccepted acknowledges a background generation request.
type AsyncAccepted struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

func newGenerationStatus(job pipeline.Job) *GenerationStatus {
	return &GenerationStatus{
		JobID:        job.ID,
		Status:       job.Status,
		Progress:     job.Progress,
		CurrentStep:  job.CurrentStep,
		ErrorMessage: job.Error,
	}
}

func respondOK[T any](w http.ResponseWriter, data T) {
	handlers.RespondJSON(w, http.StatusOK, APIResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}
