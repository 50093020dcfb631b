package errors

import "errors"

// Page-store lookup errors.
var (
	// ErrPageNotFound is returned by authoritative lookups when no page
	// carries the requested title. Scoped search reports absence as a
	// plain nil result instead, because the search index lags writes.
	ErrPageNotFound = errors.New("page not found")
)
