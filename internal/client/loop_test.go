package client_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/client"
	"go.trai.ch/hotload/internal/core/ports/mocks"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestLoop_RunsTasksInOrderAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := client.NewLoop(mocks.NewMockLogger(gomock.NewController(t)))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- loop.Run(ctx) }()

	var got []int
	finished := make(chan struct{})
	for i := range 5 {
		loop.Post(func() {
			got = append(got, i)
			if i == 4 {
				close(finished)
			}
		})
	}
	<-finished

	cancel()
	require.NoError(t, <-stopped)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)

	assert.NotPanics(t, func() { loop.Post(func() {}) })
}

func TestLoop_AfterFuncPostsBack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		loop := client.NewLoop(mocks.NewMockLogger(gomock.NewController(t)))
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go func() { _ = loop.Run(ctx) }()

		var fired atomic.Bool
		loop.AfterFunc(50*time.Millisecond, func() { fired.Store(true) })
		stop := loop.AfterFunc(50*time.Millisecond, func() { t.Error("stopped timer fired") })
		assert.True(t, stop())

		time.Sleep(49 * time.Millisecond)
		synctest.Wait()
		assert.False(t, fired.Load())

		time.Sleep(time.Millisecond)
		synctest.Wait()
		assert.True(t, fired.Load())
	})
}

func TestLoop_PanickingTaskIsLogged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		logger := mocks.NewMockLogger(gomock.NewController(t))
		logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorContains(t, err, "client task panicked")
		})

		loop := client.NewLoop(logger)
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go func() { _ = loop.Run(ctx) }()

		var after atomic.Bool
		loop.Post(func() { panic("boom") })
		loop.Post(func() { after.Store(true) })
		synctest.Wait()

		assert.True(t, after.Load())
	})
}
