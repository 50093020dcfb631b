package publish

import "sync"

// EntryKind labels what kind of local entry a publish error refers to.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// PublishError records one failed upsert. StatusCode is zero when the
// failure never reached the store (read error, network failure before a
// response).
type PublishError struct {
	Path       string
	Kind       EntryKind
	Reason     string
	StatusCode int
}

// Stats aggregates the outcome of every upsert in a run. It is mutated
// from the file-upsert workers and the sequential directory path
// concurrently, so every mutation and read goes through the mutex; a
// lost increment would make the final summary lie. One Stats instance
// belongs to one run.
type Stats struct {
	mu      sync.Mutex
	created int
	updated int
	errors  []PublishError
}

// RecordCreated counts a successful page creation.
func (s *Stats) RecordCreated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
}

// RecordUpdated counts a successful page update.
func (s *Stats) RecordUpdated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated++
}

// RecordFailure appends one error for a failed entry. A failed
// directory is recorded once, not once per skipped descendant.
func (s *Stats) RecordFailure(path string, kind EntryKind, reason string, statusCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, PublishError{
		Path:       path,
		Kind:       kind,
		Reason:     reason,
		StatusCode: statusCode,
	})
}

// Created returns the number of pages created.
func (s *Stats) Created() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.created
}

// Updated returns the number of pages updated.
func (s *Stats) Updated() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updated
}

// Succeeded returns the total number of successful upserts.
func (s *Stats) Succeeded() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.created + s.updated
}

// Errors returns a copy of the recorded errors in record order.
func (s *Stats) Errors() []PublishError {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PublishError, len(s.errors))
	copy(out, s.errors)

	return out
}

// HasErrors reports whether any upsert failed. The reconciler must not
// run when this is true: deleting against a partial publish would turn
// one failure into data loss.
func (s *Stats) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.errors) > 0
}

// SuccessRate returns the fraction of attempted upserts that succeeded,
// in percent. Zero attempts yield 100.
func (s *Stats) SuccessRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempted := s.created + s.updated + len(s.errors)
	if attempted == 0 {
		return 100.0
	}

	return float64(s.created+s.updated) / float64(attempted) * 100.0
}
