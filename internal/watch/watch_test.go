package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path   string
		ignore bool
	}{
		{"/site/index.org", false},
		{"/site/posts/a.html", false},
		{"/site/.index.org.swp", true},
		{"/site/index.org~", true},
		{"/site/#index.org#", true},
		{"/site/.#index.org", true},
		{"/site/.DS_Store", true},
		{"/site/Thumbs.db", true},
		{"/site/notes.swx", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.path))
		})
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	req, trigger := newDebouncer(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced request never fired")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- New(root).WithDebounce(20*time.Millisecond).Run(ctx, func(context.Context) {
			rebuilds.Add(1)
		})
	}()

	// Keep writing until the watcher has registered the tree and reacted.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(root, "posts", "a.org"), []byte(time.Now().String()), 0o644)
		return rebuilds.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunMissingRoot(t *testing.T) {
	err := New(filepath.Join(t.TempDir(), "nope")).Run(context.Background(), func(context.Context) {})
	assert.Error(t, err)
}
