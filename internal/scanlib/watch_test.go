package scanlib

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForScan(t *testing.T, l *Library, id string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := l.Get(id); ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("library never picked up %q", id)
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func TestWatchRefreshesOnNewScan(t *testing.T) {
	dir := t.TempDir()
	l := NewLibrary(dir)
	require.NoError(t, l.Refresh())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Watch(ctx)
	}()
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "attic.obj"), []byte("v 0 0 0\n"), 0644))
	waitForScan(t, l, "attic")

	cancel()
	<-done
}

// A burst of writes keeps re-arming the debounce timer; every file must
// still be present once the burst settles, including after timer resets
// that race a fired-but-unread tick.
func TestWatchCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	l := NewLibrary(dir)
	require.NoError(t, l.Refresh())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Watch(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	names := []string{"hall", "attic", "cellar"}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n+".obj"), []byte("v 0 0 0\n"), 0644))
		time.Sleep(30 * time.Millisecond)
	}

	for _, n := range names {
		waitForScan(t, l, n)
	}
	assert.Len(t, l.List(), len(names))

	cancel()
	<-done
}
