package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hotload/internal/adapters/logger"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory builds a watcher for a resolved project configuration.
type Factory func(cfg *domain.Config) (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg *domain.Config) (ports.Watcher, error) {
				return NewWatcher(cfg.Watch.Debounce, log, WithIgnoredPaths(ignoredPaths(cfg)...))
			}, nil
		},
	})
}

// ignoredPaths lists the compiler's outputs, which change on every build.
func ignoredPaths(cfg *domain.Config) []string {
	paths := []string{cfg.Client.OutputDir}
	if cfg.Build.Manifest != "" {
		paths = append(paths, cfg.Build.Manifest)
	}
	return paths
}
