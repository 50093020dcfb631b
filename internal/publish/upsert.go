package publish

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/alexjbarnes/wiki-publish/internal/errors"
	"github.com/alexjbarnes/wiki-publish/internal/retry"
	"github.com/alexjbarnes/wiki-publish/internal/wiki"
)

// Operation tags the outcome of an upsert.
type Operation int

const (
	OpFailed Operation = iota
	OpCreated
	OpUpdated
)

func (o Operation) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// Outcome is the result of one upsert. PageID is set for created and
// updated pages; directory callers use it to attach descendants.
type Outcome struct {
	Op         Operation
	PageID     string
	StatusCode int
	Err        error
}

// Failed reports whether the upsert did not produce a page.
func (o Outcome) Failed() bool {
	return o.Op == OpFailed
}

// Default retry schedules. Search-consistency retries absorb the lag
// between a write and the search index seeing it; the duplicate-title
// fallback needs only one short extra chance because the listing
// endpoint it queries is not index-backed.
var (
	defaultSearchRetry = retry.Policy{Delays: []time.Duration{0, 2 * time.Second, 4 * time.Second}}
	defaultLookupRetry = retry.Policy{Delays: []time.Duration{0, 2 * time.Second}}
)

// UpserterConfig configures an Upserter. Zero-valued retry policies
// fall back to the defaults.
type UpserterConfig struct {
	Store       PageStore
	Suffix      string
	SearchRetry retry.Policy
	LookupRetry retry.Policy
}

// Upserter guarantees exactly one remote page per canonical title using
// find-or-create-or-update semantics that tolerate search-index
// staleness in both directions: a recently created page may not be
// searchable yet, and a creation can be rejected as a duplicate even
// though the search just found nothing.
type Upserter struct {
	store       PageStore
	suffix      string
	searchRetry retry.Policy
	lookupRetry retry.Policy
	logger      *slog.Logger
}

// NewUpserter creates an Upserter.
func NewUpserter(cfg UpserterConfig, logger *slog.Logger) *Upserter {
	if cfg.SearchRetry.Attempts() == 0 {
		cfg.SearchRetry = defaultSearchRetry
	}

	if cfg.LookupRetry.Attempts() == 0 {
		cfg.LookupRetry = defaultLookupRetry
	}

	return &Upserter{
		store:       cfg.Store,
		suffix:      cfg.Suffix,
		searchRetry: cfg.SearchRetry,
		lookupRetry: cfg.LookupRetry,
		logger:      logger,
	}
}

// Upsert publishes content under the canonical title, attached beneath
// parentID (the configured root parent when empty). It updates the
// existing page when one is found, creates one otherwise, and resolves
// the duplicate-title race through an authoritative direct lookup.
func (u *Upserter) Upsert(ctx context.Context, title, content, parentID string) Outcome {
	fullTitle := FullTitle(title, u.suffix)

	existing := u.findExisting(ctx, fullTitle, parentID)
	if existing != nil {
		u.logger.Debug("updating existing page",
			slog.String("title", fullTitle),
			slog.String("id", existing.ID),
			slog.Int("version", existing.Version+1),
		)

		return u.update(ctx, existing, fullTitle, content)
	}

	u.logger.Debug("creating new page", slog.String("title", fullTitle))

	id, err := u.store.CreatePage(ctx, fullTitle, content, parentID)
	if err == nil {
		return Outcome{Op: OpCreated, PageID: id}
	}

	if !wiki.IsDuplicateTitle(err) {
		return Outcome{Op: OpFailed, Err: err, StatusCode: wiki.StatusOf(err)}
	}

	// The search found nothing but the store says the title exists:
	// index lag cut the other way. Ask the authoritative listing
	// endpoint and update the page it returns.
	u.logger.Debug("duplicate title on create, falling back to direct lookup",
		slog.String("title", fullTitle))

	ref := u.directLookup(ctx, fullTitle)
	if ref == nil {
		return Outcome{Op: OpFailed, Err: err, StatusCode: wiki.StatusOf(err)}
	}

	return u.update(ctx, ref, fullTitle, content)
}

// findExisting searches for the page under the retry schedule that
// absorbs search-index lag. A persistent search failure is treated as
// "not found" and logged; the create path's duplicate-title fallback
// recovers if the page actually exists.
func (u *Upserter) findExisting(ctx context.Context, fullTitle, parentID string) *wiki.PageRef {
	var found *wiki.PageRef

	err := u.searchRetry.Run(ctx, func(attempt int) (bool, error) {
		ref, err := u.store.SearchByTitleAncestor(ctx, fullTitle, parentID)
		if err != nil {
			u.logger.Warn("page search failed",
				slog.String("title", fullTitle),
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()),
			)

			return false, err
		}

		found = ref

		return ref != nil, nil
	})
	if err != nil && found == nil {
		u.logger.Debug("search exhausted, assuming page does not exist",
			slog.String("title", fullTitle))
	}

	return found
}

// directLookup queries the non-indexed listing endpoint, retrying once
// after a short delay in case the store needs a moment to expose a page
// another writer just created.
func (u *Upserter) directLookup(ctx context.Context, fullTitle string) *wiki.PageRef {
	var found *wiki.PageRef

	err := u.lookupRetry.Run(ctx, func(attempt int) (bool, error) {
		ref, err := u.store.GetByTitleDirect(ctx, fullTitle)
		if err != nil {
			if errors.Is(err, apperrors.ErrPageNotFound) {
				return false, err
			}

			return true, err
		}

		found = ref

		return true, nil
	})
	if err != nil && found == nil {
		u.logger.Warn("direct lookup failed",
			slog.String("title", fullTitle),
			slog.String("error", err.Error()),
		)
	}

	return found
}

func (u *Upserter) update(ctx context.Context, ref *wiki.PageRef, fullTitle, content string) Outcome {
	if err := u.store.UpdatePage(ctx, ref.ID, fullTitle, content, ref.Version+1); err != nil {
		return Outcome{Op: OpFailed, Err: err, StatusCode: wiki.StatusOf(err)}
	}

	return Outcome{Op: OpUpdated, PageID: ref.ID}
}
