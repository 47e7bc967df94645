package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hotload/internal/core/ports"
)

// ModTimesNodeID is the unique identifier for the modification time source Graft node.
const ModTimesNodeID graft.ID = "adapter.fs.modtimes"

func init() {
	graft.Register(graft.Node[ports.ModTimeSource]{
		ID:        ModTimesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModTimeSource, error) {
			return NewModTimes(), nil
		},
	})
}
