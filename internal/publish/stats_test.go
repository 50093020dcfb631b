package publish

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Counters(t *testing.T) {
	s := &Stats{}

	s.RecordCreated()
	s.RecordCreated()
	s.RecordUpdated()

	assert.Equal(t, 2, s.Created())
	assert.Equal(t, 1, s.Updated())
	assert.Equal(t, 3, s.Succeeded())
	assert.False(t, s.HasErrors())
	assert.InDelta(t, 100.0, s.SuccessRate(), 0.01)
}

func TestStats_Failures(t *testing.T) {
	s := &Stats{}

	s.RecordCreated()
	s.RecordFailure("/docs/a.md", KindFile, "boom", 500)
	s.RecordFailure("/docs/b", KindDirectory, "denied", 403)

	assert.True(t, s.HasErrors())

	errs := s.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, PublishError{Path: "/docs/a.md", Kind: KindFile, Reason: "boom", StatusCode: 500}, errs[0])
	assert.Equal(t, PublishError{Path: "/docs/b", Kind: KindDirectory, Reason: "denied", StatusCode: 403}, errs[1])

	assert.InDelta(t, 100.0/3.0, s.SuccessRate(), 0.01)
}

func TestStats_SuccessRateNoAttempts(t *testing.T) {
	s := &Stats{}
	assert.InDelta(t, 100.0, s.SuccessRate(), 0.01)
}

func TestStats_ErrorsReturnsCopy(t *testing.T) {
	s := &Stats{}
	s.RecordFailure("a", KindFile, "x", 0)

	errs := s.Errors()
	errs[0].Path = "mutated"

	assert.Equal(t, "a", s.Errors()[0].Path)
}

// Concurrent increments must not lose updates: the final summary has to
// be exact, not approximate.
func TestStats_ConcurrentMutation(t *testing.T) {
	s := &Stats{}

	const (
		goroutines = 8
		perG       = 500
	)

	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		g := g

		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < perG; i++ {
				switch (g + i) % 3 {
				case 0:
					s.RecordCreated()
				case 1:
					s.RecordUpdated()
				default:
					s.RecordFailure("p", KindFile, "e", 0)
				}
			}
		}()
	}

	wg.Wait()

	total := s.Created() + s.Updated() + len(s.Errors())
	assert.Equal(t, goroutines*perG, total)
}
