package ports

import (
	"context"
	"iter"
)

// WatchEvent represents a batch of file system changes after debouncing.
type WatchEvent struct {
	// Paths are the absolute paths that changed within one debounce window.
	Paths []string
}

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directories recursively.
	Start(ctx context.Context, roots ...string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of debounced change batches.
	// The iterator ends when the watcher stops.
	Events() iter.Seq[WatchEvent]
}
