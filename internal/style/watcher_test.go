package style

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "live.mplstyle", testSheet)

	e := NewEngine(nil)
	require.NoError(t, e.Use(path))

	changes := make(chan []string, 4)
	w := NewWatcher(e, path, nil)
	w.SetDebounce(10 * time.Millisecond)
	w.SetChangeCallback(func(changed []string) {
		changes <- changed
	})

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	assert.True(t, w.IsRunning())

	updated := "figure.facecolor: f4ecd8\ntext.color: eceef2\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{"figure.facecolor"}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	v, _ := e.Get("figure.facecolor")
	assert.Equal(t, "f4ecd8", v)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "live.mplstyle", testSheet)

	e := NewEngine(nil)
	require.NoError(t, e.Use(path))

	changes := make(chan []string, 1)
	w := NewWatcher(e, path, nil)
	w.SetDebounce(10 * time.Millisecond)
	w.SetChangeCallback(func(changed []string) { changes <- changed })
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)

	writeSheet(t, dir, "other.mplstyle", "figure.facecolor: 000000\n")

	select {
	case changed := <-changes:
		t.Fatalf("unexpected reload: %v", changed)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "live.mplstyle", testSheet)
	w := NewWatcher(NewEngine(nil), path, nil)

	w.Stop()
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "live.mplstyle", testSheet)
	w := NewWatcher(NewEngine(nil), path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	require.True(t, w.IsRunning())

	w.mu.RLock()
	done := w.doneCh
	w.mu.RUnlock()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch loop to exit")
	}
	assert.False(t, w.IsRunning())

	// Stop after the loop exited on its own must not block or panic
	w.Stop()

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	assert.True(t, w.IsRunning())
}

func TestWatcher_ReloadsAfterRestart(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "live.mplstyle", testSheet)

	e := NewEngine(nil)
	require.NoError(t, e.Use(path))

	changes := make(chan []string, 4)
	w := NewWatcher(e, path, nil)
	w.SetDebounce(10 * time.Millisecond)
	w.SetChangeCallback(func(changed []string) { changes <- changed })

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	assert.Eventually(t, func() bool { return !w.IsRunning() }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(path, []byte("figure.facecolor: 112233\ntext.color: eceef2\n"), 0644))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{"figure.facecolor"}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after restart")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := NewWatcher(NewEngine(nil), "/no/such/dir/live.mplstyle", nil)
	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
}
