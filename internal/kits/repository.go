package kits

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/pagination"
	"github.com/JaimeStill/brandkit/pkg/query"
	"github.com/JaimeStill/brandkit/pkg/repository"
	"github.com/JaimeStill/brandkit/pkg/storage"
)

const manifestContentType = "application/json"

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a kit repository implementing the System interface.
// A nil db archives manifests to storage only.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "kits"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Indexed() bool {
	return r.db != nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Kit], error) {
	if r.db == nil {
		return nil, ErrIndexUnavailable
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "BusinessName", "Industry")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count kits: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	kits, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanKit)
	if err != nil {
		return nil, fmt.Errorf("query kits: %w", err)
	}

	result := pagination.NewPageResult(kits, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Detail, error) {
	resp, err := r.readManifest(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.db == nil {
		return &Detail{Kit: newKit(id, resp), Response: resp}, nil
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	k, err := repository.QueryOne(ctx, r.db, q, args, scanKit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &Detail{Kit: k, Response: resp}, nil
}

// Save writes the manifest for resp and indexes it. The manifest is
// removed again when indexing fails.
func (r *repo) Save(ctx context.Context, resp *pipeline.Response) error {
	id, err := uuid.Parse(resp.JobID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, resp.JobID)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	key := ManifestKey(id)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), manifestContentType); err != nil {
		return fmt.Errorf("upload manifest: %w", err)
	}

	if r.db == nil {
		r.logger.Info("kit archived", "id", id, "business_name", resp.BusinessName)
		return nil
	}

	k := newKit(id, resp)

	q := `
		INSERT INTO brand_kits(id, business_name, industry, style, color_scheme, logo_count, font_suggestion, manifest_key, processing_time_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, business_name, industry, style, color_scheme, logo_count, font_suggestion, manifest_key, processing_time_seconds, created_at`

	insertArgs := []any{
		k.ID,
		k.BusinessName,
		k.Industry,
		k.Style,
		k.ColorScheme,
		k.LogoCount,
		k.FontSuggestion,
		k.ManifestKey,
		k.ProcessingTimeSeconds,
		k.CreatedAt,
	}

	_, err = repository.WithTx(
		ctx, r.db,
		func(tx *sql.Tx) (Kit, error) {
			return repository.QueryOne(ctx, tx, q, insertArgs, scanKit)
		},
		func(ctx context.Context) error {
			if err := r.storage.Delete(ctx, key); err != nil {
				r.logger.Warn("compensating manifest delete failed", "key", key, "error", err)
				return err
			}
			return nil
		},
	)

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("kit archived", "id", id, "business_name", resp.BusinessName, "indexed", true)
	return nil
}

// Delete removes the index row and every stored asset of the kit.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db != nil {
		_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
			if err := repository.ExecExpectOne(
				ctx, tx,
				"DELETE FROM brand_kits WHERE id = $1",
				id,
			); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, nil
		})

		if err != nil {
			return repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
	}

	prefix := fmt.Sprintf("%s%s/", Prefix, id)
	objects, err := r.storage.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list kit assets: %w", err)
	}

	if r.db == nil && len(objects) == 0 {
		return ErrNotFound
	}

	for _, obj := range objects {
		if delErr := r.storage.Delete(ctx, obj.Key); delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
			r.logger.Warn(
				"asset delete failed after kit delete",
				"key", obj.Key,
				"error", delErr,
			)
		}
	}

	r.logger.Info("kit deleted", "id", id, "assets", len(objects))
	return nil
}

// Prune drops index rows created before cutoff. Storage retention removes
// the manifests on the same schedule, so the rows would otherwise dangle.
func (r *repo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.db == nil {
		return 0, nil
	}

	n, err := repository.ExecCount(
		ctx, r.db,
		"DELETE FROM brand_kits WHERE created_at < $1",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("prune kits: %w", err)
	}

	if n > 0 {
		r.logger.Info("kit index pruned", "cutoff", cutoff, "removed", n)
	}
	return n, nil
}

func (r *repo) readManifest(ctx context.Context, id uuid.UUID) (*pipeline.Response, error) {
	rc, err := r.storage.Download(ctx, ManifestKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download manifest: %w", err)
	}
	defer rc.Close()

	var resp pipeline.Response
	if err := json.NewDecoder(rc).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &resp, nil
}
