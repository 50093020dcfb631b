package wiki

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransientError wraps an error that is likely temporary and safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err (or any error in its chain) is a
// TransientError, meaning the caller should retry after a backoff.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// APIError is a structured failure returned by the page store. Message
// is the store's own error text, StatusCode the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("page store (%d): %s", e.StatusCode, e.Message)
}

// StatusOf extracts the HTTP status code from an APIError in err's
// chain. Returns 0 when err carries no structured status.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}

	return 0
}

// IsDuplicateTitle reports whether err is the store's "title already
// exists" class of creation failure. The store exposes no structured
// code for this condition, so the check matches the message text and is
// best-effort.
func IsDuplicateTitle(err error) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}

	msg := strings.ToLower(ae.Message)

	return strings.Contains(msg, "already exists") || strings.Contains(msg, "same title")
}

// IsConflict reports whether err is a version conflict on update.
func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusConflict
}

// isTransientStatus returns true for HTTP status codes that indicate a
// temporary server-side problem worth retrying.
func isTransientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
