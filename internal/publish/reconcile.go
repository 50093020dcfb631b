package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexjbarnes/wiki-publish/internal/wiki"
)

const (
	// listPageSize is the per-request bound for the paginated managed-page
	// listing (the store caps search results per request anyway).
	listPageSize = 250

	// maxOrphanRatio is the safety guard: when more than this fraction of
	// managed pages would be deleted, the discrepancy more likely means a
	// configuration or traversal bug than genuine drift, and deletion is
	// skipped rather than risking mass data loss.
	maxOrphanRatio = 0.20
)

// ReconcileResult reports what the differential cleanup did.
type ReconcileResult struct {
	// Deleted is the number of orphans the store confirmed deleted.
	Deleted int

	// Orphans holds the canonical titles that were found remotely but
	// not expected locally, whether or not they ended up deleted.
	Orphans []string

	// Skipped is true when the safety guard aborted deletion; Reason
	// says why.
	Skipped bool
	Reason  string
}

// Reconciler removes remote pages that no longer correspond to any
// local entry. It must only run after a publish phase with zero errors:
// a page missing from a partial publish might just be one that failed
// to re-create.
type Reconciler struct {
	store    PageStore
	suffix   string
	pageSize int
	logger   *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(store PageStore, suffix string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:    store,
		suffix:   suffix,
		pageSize: listPageSize,
		logger:   logger,
	}
}

// Reconcile lists every self-managed remote page, diffs the recovered
// canonical titles against the expected set and deletes the orphans,
// subject to the safety guard. Deletions are independent and
// best-effort; one failed delete does not abort the batch.
func (r *Reconciler) Reconcile(ctx context.Context, expected map[string]struct{}) (ReconcileResult, error) {
	managed, err := r.listManaged(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}

	// Nothing managed and nothing expected is a no-op, not a division
	// by zero.
	if len(managed) == 0 {
		r.logger.Info("no managed pages found, nothing to reconcile")
		return ReconcileResult{}, nil
	}

	var (
		orphans []wiki.PageRef
		titles  []string
	)

	for _, page := range managed {
		title, ok := TrimTitleSuffix(page.Title, r.suffix)
		if !ok {
			// The listing matches by containment; a title that merely
			// contains the suffix somewhere is not one of ours.
			r.logger.Debug("ignoring page without trailing suffix", slog.String("title", page.Title))
			continue
		}

		if _, ok := expected[title]; !ok {
			orphans = append(orphans, page)
			titles = append(titles, title)
		}
	}

	r.logger.Info("computed orphan set",
		slog.Int("managed", len(managed)),
		slog.Int("orphans", len(orphans)),
	)

	if len(orphans) == 0 {
		return ReconcileResult{}, nil
	}

	ratio := float64(len(orphans)) / float64(len(managed))
	if ratio > maxOrphanRatio {
		reason := fmt.Sprintf("%d of %d managed pages (%.1f%%) would be deleted, above the %.0f%% safety threshold",
			len(orphans), len(managed), ratio*100, maxOrphanRatio*100)
		r.logger.Warn("skipping orphan deletion", slog.String("reason", reason))

		return ReconcileResult{Orphans: titles, Skipped: true, Reason: reason}, nil
	}

	deleted := 0

	for _, page := range orphans {
		r.logger.Info("deleting orphan page",
			slog.String("id", page.ID),
			slog.String("title", page.Title),
		)

		if err := r.store.DeletePage(ctx, page.ID); err != nil {
			r.logger.Warn("deleting orphan failed",
				slog.String("id", page.ID),
				slog.String("error", err.Error()),
			)

			continue
		}

		deleted++
	}

	return ReconcileResult{Deleted: deleted, Orphans: titles}, nil
}

// listManaged pages through every remote page carrying the discovery
// suffix, following the continuation cursor until exhausted.
func (r *Reconciler) listManaged(ctx context.Context) ([]wiki.PageRef, error) {
	var (
		managed []wiki.PageRef
		cursor  string
	)

	for {
		pages, next, err := r.store.ListBySuffix(ctx, r.suffix, r.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("listing managed pages: %w", err)
		}

		managed = append(managed, pages...)

		r.logger.Debug("retrieved managed page batch",
			slog.Int("batch", len(pages)),
			slog.Int("total", len(managed)),
		)

		if next == "" {
			return managed, nil
		}

		cursor = next
	}
}
