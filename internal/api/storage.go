package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/brandkit/pkg/handlers"
	"github.com/JaimeStill/brandkit/pkg/openapi"
	"github.com/JaimeStill/brandkit/pkg/routes"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

var errInvalidDays = errors.New("days must be a positive integer")

type storageHandler struct {
	store         storage.System
	logger        *slog.Logger
	prefix        string
	maxListSize   int32
	retentionDays int
	now           func() time.Time
}

func newStorageHandler(
	store storage.System,
	logger *slog.Logger,
	prefix string,
	maxListSize int32,
	retentionDays int,
) *storageHandler {
	return &storageHandler{
		store:         store,
		logger:        logger.With("handler", "storage"),
		prefix:        prefix,
		maxListSize:   maxListSize,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Tag:    "Storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list, OpenAPI: storageOps.List},
			{Method: "GET", Pattern: "/usage", Handler: h.usage, OpenAPI: storageOps.Usage},
			{Method: "POST", Pattern: "/cleanup", Handler: h.cleanup, OpenAPI: storageOps.Cleanup},
			{Method: "GET", Pattern: "/{key...}", Handler: h.download, OpenAPI: storageOps.Download},
		},
	}
}

var storageOps = struct {
	List     *openapi.Operation
	Usage    *openapi.Operation
	Cleanup  *openapi.Operation
	Download *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List stored assets",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("prefix", "string", "Key prefix, defaults to kits/", false),
			openapi.QueryParam("max_results", "integer", "Maximum objects returned", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Object listing"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Usage: &openapi.Operation{
		Summary:    "Summarize storage usage",
		Parameters: []*openapi.Parameter{openapi.QueryParam("prefix", "string", "Key prefix, defaults to kits/", false)},
		Responses: map[int]*openapi.Response{
			200: {Description: "File count, total bytes, and human-readable size"},
		},
	},
	Cleanup: &openapi.Operation{
		Summary:    "Delete assets older than a retention window",
		Parameters: []*openapi.Parameter{openapi.QueryParam("days", "integer", "Retention in days, defaults to the configured window", false)},
		Responses: map[int]*openapi.Response{
			200: {Description: "Cleanup result"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download a stored asset",
		Parameters: []*openapi.Parameter{openapi.KeyParam("key", "Object key, e.g. kits/{id}/logo_1.png")},
		Responses: map[int]*openapi.Response{
			200: {Description: "Object content"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

type listResult struct {
	Prefix    string           `json:"prefix"`
	Objects   []storage.Object `json:"objects"`
	Total     int              `json:"total"`
	Truncated bool             `json:"truncated"`
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = h.prefix
	}

	maxResults, err := storage.ParseMaxResults(
		r.URL.Query().Get("max_results"),
		h.maxListSize,
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	objects, err := h.store.List(r.Context(), prefix)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	result := listResult{
		Prefix:  prefix,
		Objects: objects,
		Total:   len(objects),
	}
	if len(objects) > int(maxResults) {
		result.Objects = objects[:maxResults]
		result.Truncated = true
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) usage(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = h.prefix
	}

	usage, err := storage.ComputeUsage(r.Context(), h.store, prefix)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, usage)
}

func (h *storageHandler) cleanup(w http.ResponseWriter, r *http.Request) {
	days := h.retentionDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidDays)
			return
		}
		days = n
	}

	cutoff := h.now().AddDate(0, 0, -days)

	result, err := storage.Cleanup(r.Context(), h.store, h.prefix, cutoff, h.logger)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType(key))
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("download interrupted", "key", key, "error", err)
	}
}

func contentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
