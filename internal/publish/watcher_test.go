package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RepublishesAfterQuietPeriod(t *testing.T) {
	dir := t.TempDir()

	ran := make(chan struct{}, 1)
	watcher := NewWatcher(dir, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx) }()

	// Give the watcher a moment to register before generating events.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A"), 0o644))

	select {
	case <-ran:
	case <-time.After(10 * time.Second):
		t.Fatal("expected a republish after the quiet period")
	}

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestWatcher_CancellationStopsWatch(t *testing.T) {
	dir := t.TempDir()

	watcher := NewWatcher(dir, func(context.Context) error { return nil }, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watcher.Watch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcher_MissingDirectoryFails(t *testing.T) {
	watcher := NewWatcher(filepath.Join(t.TempDir(), "gone"), func(context.Context) error { return nil }, testLogger)

	err := watcher.Watch(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "watching publish dir")
}

func TestWatcher_ShouldIgnore(t *testing.T) {
	w := NewWatcher("/vault", nil, testLogger)

	tests := []struct {
		name   string
		path   string
		ignore bool
	}{
		{name: "regular markdown", path: "/vault/note.md", ignore: false},
		{name: "hidden file", path: "/vault/.obsidian", ignore: true},
		{name: "editor backup", path: "/vault/note.md~", ignore: true},
		{name: "vim swap", path: "/vault/.note.md.swp", ignore: true},
		{name: "watch root itself", path: "/vault", ignore: false},
		{name: "nested regular", path: "/vault/sub/note.md", ignore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ignore, w.shouldIgnore(tt.path))
		})
	}
}
