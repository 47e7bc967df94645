package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hotload/internal/adapters/compiler"
	"go.trai.ch/hotload/internal/adapters/overlay"
	"go.trai.ch/hotload/internal/adapters/telemetry"
	"go.trai.ch/hotload/internal/adapters/watcher"
	"go.trai.ch/hotload/internal/app"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApplication(loader ports.ConfigLoader, log ports.Logger, comp ports.Compiler) *app.App {
	return app.New(
		loader,
		log,
		telemetry.NewOTelTracer("test"),
		nil,
		nil,
		overlay.NewTerminal(new(bytes.Buffer)),
		compiler.Factory(func(*domain.Config) ports.Compiler { return comp }),
		watcher.Factory(func(*domain.Config) (ports.Watcher, error) { return nil, errors.New("unused") }),
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := newApplication(mocks.NewMockConfigLoader(ctrl), mockLogger, nil)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_ProviderError verifies that initialization failures are reported on stderr.
func TestRun_ProviderError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("graph failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: graph failed")
}

// TestRun_CommandError verifies that command failures are logged and exit with 1.
func TestRun_CommandError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().LoadFile("missing.yaml").Return(nil, domain.ErrConfigNotFound)
	mockLogger.EXPECT().Error(domain.ErrConfigNotFound)

	application := newApplication(mockLoader, mockLogger, nil)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"plan", "app.core", "-c", "missing.yaml"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
