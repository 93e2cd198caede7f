package builder

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
	assert.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	assert.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	assert.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	assert.True(t, shouldIgnoreEvent("/tmp/index.md~"))
	assert.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	assert.False(t, shouldIgnoreEvent("/tmp/visible.md"))
}

func TestUnderAny(t *testing.T) {
	dirs := []string{filepath.Join("/src", "_build")}
	assert.True(t, underAny(filepath.Join("/src", "_build", "index.html"), dirs))
	assert.True(t, underAny(filepath.Join("/src", "_build"), dirs))
	assert.False(t, underAny(filepath.Join("/src", "_builder.md"), dirs))
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	req, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()
	for i := 0; i < 5; i++ {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced request not delivered")
	}
	select {
	case <-req:
		t.Fatal("expected a single request")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "_build")
	require.NoError(t, os.MkdirAll(out, 0o750))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watcher{Debounce: 10 * time.Millisecond, Ignore: []string{out}}.Run(ctx, src, func(context.Context) error {
			rebuilds.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register the directories.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# x\n"), 0o600))

	assert.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
