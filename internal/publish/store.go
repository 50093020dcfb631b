package publish

import (
	"context"

	"github.com/alexjbarnes/wiki-publish/internal/wiki"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=publish

// PageStore is the subset of the page-store API the publishing core
// consumes. *wiki.Client satisfies it; tests substitute mocks.
type PageStore interface {
	// SearchByTitleAncestor finds a page by exact title anywhere under
	// the given ancestor (configured root when empty). Eventually
	// consistent; absence is reported as (nil, nil).
	SearchByTitleAncestor(ctx context.Context, fullTitle, ancestorID string) (*wiki.PageRef, error)

	// GetByTitleDirect is the authoritative, non-indexed lookup by exact
	// title. Returns errors.ErrPageNotFound when absent.
	GetByTitleDirect(ctx context.Context, fullTitle string) (*wiki.PageRef, error)

	// CreatePage creates a page under parentID and returns its id.
	CreatePage(ctx context.Context, fullTitle, content, parentID string) (string, error)

	// UpdatePage replaces a page's title and content at exactly
	// newVersion (current version plus one).
	UpdatePage(ctx context.Context, id, fullTitle, content string, newVersion int) error

	// DeletePage removes a page by id.
	DeletePage(ctx context.Context, id string) error

	// ListBySuffix pages through all pages whose title contains the
	// discovery suffix. An empty returned cursor ends the listing.
	ListBySuffix(ctx context.Context, suffix string, limit int, cursor string) ([]wiki.PageRef, string, error)

	// AttachFile uploads a file as a page attachment.
	AttachFile(ctx context.Context, pageID, filename string, data []byte) error
}
