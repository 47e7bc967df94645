package overlay

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hotload/internal/core/ports"
)

// NodeID is the unique identifier for the overlay display Graft node.
const NodeID graft.ID = "adapter.overlay"

func init() {
	graft.Register(graft.Node[ports.Display]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Display, error) {
			return NewTerminal(nil), nil
		},
	})
}
