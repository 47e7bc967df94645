package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hotload/internal/adapters/compiler"  //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/evaluator" //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/overlay"   //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/hotload/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			fs.ModTimesNodeID,
			evaluator.NodeID,
			overlay.NodeID,
			compiler.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	mtimes, err := graft.Dep[ports.ModTimeSource](ctx)
	if err != nil {
		return nil, err
	}
	server, err := graft.Dep[*evaluator.Server](ctx)
	if err != nil {
		return nil, err
	}
	display, err := graft.Dep[ports.Display](ctx)
	if err != nil {
		return nil, err
	}
	compilers, err := graft.Dep[compiler.Factory](ctx)
	if err != nil {
		return nil, err
	}
	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, log, tracer, mtimes, server, display, compilers, watchers), nil
}
