package wiki

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/alexjbarnes/wiki-publish/internal/errors"
)

// searchLimit bounds scoped title searches. Exact-title matches return
// at most a handful of rows; anything past the first is ignored.
const searchLimit = 5

// cqlEscape escapes a string for embedding in a double-quoted CQL value.
func cqlEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// SearchByTitleAncestor looks up a page by exact title anywhere under
// the given ancestor (the configured root parent when ancestorID is
// empty). The search index is eventually consistent with recent writes,
// so an absent result is a normal answer, reported as (nil, nil) rather
// than an error; callers retry per their own policy.
func (c *Client) SearchByTitleAncestor(ctx context.Context, fullTitle, ancestorID string) (*PageRef, error) {
	if ancestorID == "" {
		ancestorID = c.parentPageID
	}

	cql := fmt.Sprintf(`title="%s" AND ancestor=%s AND space="%s"`,
		cqlEscape(fullTitle), ancestorID, cqlEscape(c.space))

	endpoint := fmt.Sprintf("search?cql=%s&limit=%d&expand=version", url.QueryEscape(cql), searchLimit)

	var resp searchResponse
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("searching for %q: %w", fullTitle, err)
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	page := resp.Results[0].Content

	return &PageRef{ID: page.ID, Version: page.Version.Number, Title: page.Title}, nil
}

// GetByTitleDirect looks up a page by exact title through the content
// listing endpoint, which reads the store directly instead of the
// search index. Used as the authoritative fallback when search and
// create disagree. Returns ErrPageNotFound when no page carries the
// title.
func (c *Client) GetByTitleDirect(ctx context.Context, fullTitle string) (*PageRef, error) {
	endpoint := fmt.Sprintf("content?title=%s&spaceKey=%s&expand=version",
		url.QueryEscape(fullTitle), url.QueryEscape(c.space))

	var resp listResponse
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("direct lookup of %q: %w", fullTitle, err)
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPageNotFound, fullTitle)
	}

	page := resp.Results[0]

	return &PageRef{ID: page.ID, Version: page.Version.Number, Title: page.Title}, nil
}

// CreatePage creates a new page under parentID (the configured root
// parent when empty) and returns its id. A duplicate-title rejection
// surfaces as an *APIError classifiable with IsDuplicateTitle.
func (c *Client) CreatePage(ctx context.Context, fullTitle, content, parentID string) (string, error) {
	if parentID == "" {
		parentID = c.parentPageID
	}

	req := createRequest{
		Type:      "page",
		Title:     fullTitle,
		Ancestors: []ancestorRef{{ID: parentID}},
		Space:     spaceRef{Key: c.space},
		Body: storageBody{
			Storage: storageValue{Value: content, Representation: "storage"},
		},
	}

	var resp createResponse
	if _, err := c.do(ctx, http.MethodPost, "content/", req, &resp); err != nil {
		return "", fmt.Errorf("creating page %q: %w", fullTitle, err)
	}

	if resp.ID == "" {
		return "", fmt.Errorf("creating page %q: response carried no id", fullTitle)
	}

	return resp.ID, nil
}

// UpdatePage replaces a page's title and content. newVersion must be
// exactly the current version plus one; the store rejects stale
// versions with a conflict (IsConflict).
func (c *Client) UpdatePage(ctx context.Context, id, fullTitle, content string, newVersion int) error {
	req := updateRequest{
		ID:      id,
		Type:    "page",
		Title:   fullTitle,
		Version: versionField{Number: newVersion},
		Body: storageBody{
			Storage: storageValue{Value: content, Representation: "storage"},
		},
	}

	if _, err := c.do(ctx, http.MethodPut, "content/"+url.PathEscape(id), req, nil); err != nil {
		return fmt.Errorf("updating page %s to version %d: %w", id, newVersion, err)
	}

	return nil
}

// DeletePage removes a page by id.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "content/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting page %s: %w", id, err)
	}

	return nil
}

// ListBySuffix returns one page of self-managed pages (titles containing
// the discovery suffix) plus the continuation cursor for the next page.
// An empty cursor starts from the beginning; an empty returned cursor
// means the listing is exhausted.
func (c *Client) ListBySuffix(ctx context.Context, suffix string, limit int, cursor string) ([]PageRef, string, error) {
	endpoint := cursor
	if endpoint == "" {
		cql := fmt.Sprintf(`title~"%s" and type=page and space="%s"`,
			cqlEscape(suffix), cqlEscape(c.space))
		endpoint = fmt.Sprintf("search?cql=%s&limit=%d", url.QueryEscape(cql), limit)
	}

	var resp searchResponse

	raw, err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	if err != nil {
		return nil, "", fmt.Errorf("listing managed pages: %w", err)
	}

	pages := make([]PageRef, 0, len(resp.Results))
	for _, r := range resp.Results {
		pages = append(pages, PageRef{
			ID:      r.Content.ID,
			Version: r.Content.Version.Number,
			Title:   r.Content.Title,
		})
	}

	// The next link is site-rooted; resolveURL handles it on the
	// follow-up request.
	next := gjson.GetBytes(raw, "_links.next").String()

	return pages, next, nil
}

// AttachFile uploads a file as an attachment to the given page.
// Best-effort: callers log failures without failing the page itself.
func (c *Client) AttachFile(ctx context.Context, pageID, filename string, data []byte) error {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("building attachment form: %w", err)
	}

	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing attachment data: %w", err)
	}

	if err := writer.WriteField("comment", "file was attached by wiki-publish"); err != nil {
		return fmt.Errorf("writing attachment comment: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing attachment form: %w", err)
	}

	endpoint := "content/" + url.PathEscape(pageID) + "/child/attachment"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), &buf)
	if err != nil {
		return fmt.Errorf("creating attachment request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	// The store rejects multipart posts without this header.
	req.Header.Set("X-Atlassian-Token", "nocheck")
	req.SetBasicAuth(c.login, c.apiToken)

	if _, err := c.roundTrip(req, endpoint, nil); err != nil {
		return fmt.Errorf("attaching %s to page %s: %w", filename, pageID, err)
	}

	return nil
}
