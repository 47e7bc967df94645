package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/client"
	"go.trai.ch/hotload/internal/core/domain"
)

func newOverlayFixture() (*client.Overlay, *client.StateCell, *fakeDisplay, *manualScheduler) {
	display := &fakeDisplay{}
	state := client.NewStateCell()
	sched := &manualScheduler{}
	return client.NewOverlay(display, state, sched), state, display, sched
}

func TestOverlay_FirstWarningThenSummaries(t *testing.T) {
	overlay, state, display, sched := newOverlayFixture()

	state.Set(client.ReloadState{
		ReloadStarted: at(1),
		Warnings:      []domain.Warning{{Text: "a"}, {Text: "b"}, {Text: "c"}},
	})
	sched.Drain()

	assert.Equal(t, []string{"warning:a"}, display.calls)
	assert.Equal(t, 2, overlay.Pending())

	display.finish()
	sched.Drain()
	assert.Equal(t, []string{"warning:a", "append:b,c"}, display.calls)

	display.finish()
	sched.Drain()
	assert.Equal(t, 0, overlay.Pending())
}

func TestOverlay_ExceptionIsConsumedAndCleared(t *testing.T) {
	_, state, display, sched := newOverlayFixture()
	exc := &domain.Exception{Text: "boom", Type: domain.ExceptionTypeCompile}

	state.Set(client.ReloadState{ReloadStarted: at(1), Exception: exc})
	assert.Equal(t, exc, state.Get().Exception)
	assert.Equal(t, at(1), state.Get().ReloadStarted)

	sched.Drain()
	assert.Equal(t, []string{"exception:boom"}, display.calls)
	assert.True(t, state.Get().IsEmpty())
}

func TestOverlay_SuccessIndicator(t *testing.T) {
	_, state, display, sched := newOverlayFixture()

	state.Set(client.ReloadState{ReloadStarted: at(1)})
	sched.Drain()

	assert.Equal(t, []string{"success"}, display.calls)
}

func TestOverlay_NewerEpisodeWaitsForInFlightChain(t *testing.T) {
	_, state, display, sched := newOverlayFixture()

	state.Set(client.ReloadState{ReloadStarted: at(1), Exception: &domain.Exception{Text: "old"}})
	sched.Drain()
	state.Set(client.ReloadState{ReloadStarted: at(2)})
	sched.Drain()

	require.Equal(t, []string{"exception:old"}, display.calls, "the in-flight display is never replaced")

	display.finish()
	sched.Drain()
	assert.Equal(t, []string{"exception:old", "success"}, display.calls)
}

func TestOverlay_StaleEpisodeIsIgnored(t *testing.T) {
	_, state, display, sched := newOverlayFixture()

	state.Set(client.ReloadState{ReloadStarted: at(5)})
	state.Set(client.ReloadState{ReloadStarted: at(5), Warnings: []domain.Warning{{Text: "same"}}})
	state.Set(client.ReloadState{ReloadStarted: at(3), Exception: &domain.Exception{Text: "older"}})
	sched.Drain()

	assert.Equal(t, []string{"success"}, display.calls)
}

func TestOverlay_DoneIsIdempotent(t *testing.T) {
	_, state, display, sched := newOverlayFixture()

	state.Set(client.ReloadState{ReloadStarted: at(1)})
	sched.Drain()
	done := display.pending[0]
	state.Set(client.ReloadState{ReloadStarted: at(2)})
	state.Set(client.ReloadState{ReloadStarted: at(3)})
	sched.Drain()

	done()
	done()
	sched.Drain()

	assert.Equal(t, []string{"success", "success"}, display.calls)
}
