// Package wiki is the HTTP client for the remote page store. It covers
// the handful of REST operations the publishing core consumes: scoped
// search, direct title lookup, create, update, delete, suffix listing
// and file attachment.
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const (
	// httpClientTimeout is the timeout for the default HTTP client used
	// when no custom client is provided. A single slow page-store call
	// must not hang the whole run.
	httpClientTimeout = 30 * time.Second

	// maxAPIResponseBytes caps response body reads to prevent a
	// misbehaving server from consuming unbounded memory.
	maxAPIResponseBytes = 1024 * 1024
)

// Config carries the connection settings the client needs. ParentPageID
// is the root ancestor under which the whole mirrored tree lives; it is
// substituted wherever an operation is called with an empty parent.
type Config struct {
	BaseURL      string
	Space        string
	ParentPageID string
	Login        string
	APIToken     string
}

// Client talks to the page-store REST API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	space        string
	parentPageID string
	login        string
	apiToken     string
}

// NewClient creates a page-store client with the given http.Client.
// If httpClient is nil, a client with a 30-second timeout is created.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: httpClientTimeout,
		}
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      cfg.BaseURL,
		space:        cfg.Space,
		parentPageID: cfg.ParentPageID,
		login:        cfg.Login,
		apiToken:     cfg.APIToken,
	}
}

// Space returns the configured space key.
func (c *Client) Space() string {
	return c.space
}

// sanitizeResponseBody truncates and sanitizes a response body for
// inclusion in error messages. Limits to 256 bytes and replaces
// non-printable characters to prevent log injection.
func sanitizeResponseBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		body = body[:maxLen]
	}
	// Ensure valid UTF-8 and replace control characters.
	var clean []byte

	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size <= 1 {
			clean = append(clean, '?')
			body = body[1:]

			continue
		}

		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			clean = append(clean, '?')
		} else {
			clean = append(clean, body[:size]...)
		}

		body = body[size:]
	}

	return string(clean)
}

// do sends a JSON request and decodes the response into result. The
// endpoint is joined onto the base URL unless it is already absolute
// (pagination continuation links are site-rooted). Returns the raw
// response body so callers can extract fields the typed result does
// not model.
func (c *Client) do(ctx context.Context, method, endpoint string, body, result interface{}) ([]byte, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.SetBasicAuth(c.login, c.apiToken)

	return c.roundTrip(req, endpoint, result)
}

// roundTrip executes a prepared request and applies the shared response
// handling: body cap, status checks, transient classification, optional
// JSON decode into result.
func (c *Client) roundTrip(req *http.Request, endpoint string, result interface{}) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := fmt.Errorf("sending request to %s: %w", endpoint, err)
		// Network errors (timeouts, connection refused, DNS failures)
		// are transient by nature.
		return nil, &TransientError{Err: wrapped}
	}
	defer resp.Body.Close()

	// Cap response reads at 1MB. API responses are small JSON payloads.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(respBody, "message").String()
		if msg == "" {
			msg = sanitizeResponseBody(respBody)
		}

		apiErr := &APIError{StatusCode: resp.StatusCode, Message: msg}
		if isTransientStatus(resp.StatusCode) {
			return nil, &TransientError{Err: apiErr}
		}

		return nil, apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("decoding response from %s: %w", endpoint, err)
		}
	}

	return respBody, nil
}

// resolveURL joins an endpoint onto the base URL. Continuation links
// from paginated responses arrive as site-rooted paths (or, behind some
// proxies, absolute URLs) and are resolved against the site root rather
// than the REST base.
func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}

	if strings.HasPrefix(endpoint, "/") {
		return c.siteRoot() + endpoint
	}

	return c.baseURL + endpoint
}

// siteRoot strips the REST path from the base URL, leaving the scheme
// and host (plus any context path before /rest/).
func (c *Client) siteRoot() string {
	if idx := strings.Index(c.baseURL, "/rest/"); idx >= 0 {
		return c.baseURL[:idx]
	}

	return strings.TrimSuffix(c.baseURL, "/")
}
