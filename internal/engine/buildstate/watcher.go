package buildstate

import (
	"context"
	"errors"

	"go.trai.ch/hotload/internal/core/domain"
)

// Handler receives the terminal outcome of a compile cycle.
type Handler interface {
	// OnClean is called for a cycle that finished without warnings or exception.
	OnClean(ctx context.Context, meta domain.CycleMetadata) error
	// OnWarnings is called for a cycle that finished with warnings only.
	OnWarnings(ctx context.Context, meta domain.CycleMetadata) error
	// OnException is called for a failed cycle.
	OnException(ctx context.Context, meta domain.CycleMetadata) error
}

// Watch subscribes h to m. The subscription reacts only to metadata that changed and is not
// empty, routes it by outcome, and then clears the machine so the same terminal state is never
// observed twice. It returns the unsubscribe function.
func Watch(m *Machine, h Handler) func() {
	return m.Subscribe(func(ctx context.Context, prev, next domain.CycleMetadata) error {
		if next.IsEmpty() || next.Equal(prev) {
			return nil
		}

		var err error
		switch next.Outcome() {
		case domain.OutcomeClean:
			err = h.OnClean(ctx, next)
		case domain.OutcomeWarnings:
			err = h.OnWarnings(ctx, next)
		case domain.OutcomeException:
			err = h.OnException(ctx, next)
		case domain.OutcomeNone, domain.OutcomeRunning:
		}

		return errors.Join(err, m.Clear(ctx))
	})
}
