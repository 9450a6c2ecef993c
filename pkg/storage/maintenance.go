package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/brandkit/pkg/formatting"
	"github.com/JaimeStill/brandkit/pkg/lifecycle"
)

const cleanupWorkers = 8

// Usage summarizes the objects stored under a prefix.
type Usage struct {
	Provider   string    `json:"provider"`
	Prefix     string    `json:"prefix"`
	TotalFiles int       `json:"total_files"`
	TotalBytes int64     `json:"total_bytes"`
	TotalSize  string    `json:"total_size"`
	Oldest     time.Time `json:"oldest,omitzero"`
	Newest     time.Time `json:"newest,omitzero"`
}

// CleanupResult reports the outcome of a retention sweep.
type CleanupResult struct {
	Cutoff     time.Time `json:"cutoff"`
	Deleted    int       `json:"deleted"`
	Failed     int       `json:"failed"`
	BytesFreed int64     `json:"bytes_freed"`
	SizeFreed  string    `json:"size_freed"`
}

// ComputeUsage totals the objects under prefix.
func ComputeUsage(ctx context.Context, sys System, prefix string) (*Usage, error) {
	objects, err := sys.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	u := &Usage{
		Provider:   sys.Provider(),
		Prefix:     prefix,
		TotalFiles: len(objects),
	}

	for _, o := range objects {
		u.TotalBytes += o.Size
		if u.Oldest.IsZero() || o.LastModified.Before(u.Oldest) {
			u.Oldest = o.LastModified
		}
		if o.LastModified.After(u.Newest) {
			u.Newest = o.LastModified
		}
	}
	u.TotalSize = formatting.FormatBytes(u.TotalBytes, 2)

	return u, nil
}

// Cleanup deletes every object under prefix last modified before cutoff.
// Individual delete failures are logged and counted, not returned.
func Cleanup(
	ctx context.Context,
	sys System,
	prefix string,
	cutoff time.Time,
	logger *slog.Logger,
) (*CleanupResult, error) {
	stale, err := ListOlderThan(ctx, sys, prefix, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list stale objects: %w", err)
	}

	var (
		deleted atomic.Int64
		failed  atomic.Int64
		freed   atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cleanupWorkers)

	for _, o := range stale {
		g.Go(func() error {
			if err := sys.Delete(gctx, o.Key); err != nil {
				logger.Warn("cleanup delete failed", "key", o.Key, "error", err)
				failed.Add(1)
				return nil
			}
			deleted.Add(1)
			freed.Add(o.Size)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CleanupResult{
		Cutoff:     cutoff,
		Deleted:    int(deleted.Load()),
		Failed:     int(failed.Load()),
		BytesFreed: freed.Load(),
	}
	result.SizeFreed = formatting.FormatBytes(result.BytesFreed, 2)

	logger.Info(
		"storage cleanup complete",
		"prefix", prefix,
		"cutoff", cutoff,
		"deleted", result.Deleted,
		"failed", result.Failed,
		"freed", result.SizeFreed,
	)

	return result, nil
}

// PruneFunc removes records that reference objects swept before cutoff.
type PruneFunc func(ctx context.Context, cutoff time.Time) (int64, error)

// Retention periodically removes objects older than retentionDays and then
// calls each prune func with the same cutoff. It runs on a ticker until the
// lifecycle context is cancelled.
func Retention(
	lc *lifecycle.Coordinator,
	sys System,
	prefix string,
	retentionDays int,
	interval time.Duration,
	logger *slog.Logger,
	prune ...PruneFunc,
) {
	if interval <= 0 || retentionDays <= 0 {
		return
	}

	logger = logger.With("task", "retention")

	lc.Background(func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				cutoff := now.AddDate(0, 0, -retentionDays)
				if _, err := Cleanup(ctx, sys, prefix, cutoff, logger); err != nil {
					logger.Error("retention sweep failed", "error", err)
					continue
				}
				for _, fn := range prune {
					if _, err := fn(ctx, cutoff); err != nil {
						logger.Error("retention prune failed", "error", err)
					}
				}
			}
		}
	})
}
