package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/adapters/watcher"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func nextBatch(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event within 5s")
		return ports.WatchEvent{}
	}
}

func TestWatcher_EmitsDebouncedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	root := t.TempDir()
	out := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(out, domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, domain.HotloadDirName), domain.DirPerm))

	w, err := watcher.NewWatcher(20*time.Millisecond, mockLogger, watcher.WithIgnoredPaths(out))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := make(chan ports.WatchEvent, 10)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	// Writes to ignored locations never produce a batch on their own.
	require.NoError(t, os.WriteFile(filepath.Join(out, "core.js"), []byte("x"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.HotloadDirName, "watermarks.json"), []byte("{}"), domain.FilePerm))

	src := filepath.Join(root, "src", "core.src")
	require.NoError(t, os.WriteFile(src, []byte("x"), domain.FilePerm))

	ev := nextBatch(t, events)
	assert.Equal(t, []string{src}, ev.Paths)

	cancel()
	for range events {
	}
}

func TestWatcher_EventsEndOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(20*time.Millisecond, mockLogger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, t.TempDir()))
	defer func() { _ = w.Stop() }()

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events did not end after cancel")
	}
}
