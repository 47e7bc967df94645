package app_test

import (
	"bytes"
	"context"
	"iter"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hotload/internal/adapters/cas"
	"go.trai.ch/hotload/internal/adapters/compiler"
	"go.trai.ch/hotload/internal/adapters/evaluator"
	"go.trai.ch/hotload/internal/adapters/overlay"
	"go.trai.ch/hotload/internal/adapters/telemetry"
	"go.trai.ch/hotload/internal/adapters/watcher"
	"go.trai.ch/hotload/internal/app"
	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/hotload/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeServer records evaluations and serves until ctx is done.
type fakeServer struct {
	mu        sync.Mutex
	evaluated []string
	notify    chan struct{}
}

func (s *fakeServer) Evaluate(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	s.evaluated = append(s.evaluated, code)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
	return "nil", nil
}

func (s *fakeServer) Serve(ctx context.Context, _ string) error {
	<-ctx.Done()
	return nil
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newApp(
	ctrl *gomock.Controller,
	loader ports.ConfigLoader,
	comp ports.Compiler,
	server app.EvalServer,
	w ports.Watcher,
) *app.App {
	return app.New(
		loader,
		quietLogger(ctrl),
		telemetry.NewOTelTracer("test"),
		clock{"a.src": 1, "b.src": 1, "c.src": 1},
		server,
		overlay.NewTerminal(&bytes.Buffer{}),
		func(*domain.Config) ports.Compiler { return comp },
		func(*domain.Config) (ports.Watcher, error) { return w, nil },
	).WithDisableOTel()
}

func TestApp_Plan(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	comp := mocks.NewMockCompiler(ctrl)

	units := chain()
	units[2].Eligibility.AlwaysReload = true

	loader.EXPECT().LoadFile("hotload.yaml").Return(&domain.Config{}, nil)
	comp.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	comp.EXPECT().Units(gomock.Any()).Return(units, nil)

	var out bytes.Buffer
	a := newApp(ctrl, loader, comp, nil, nil)
	err := a.Plan(t.Context(), app.PlanOptions{
		ConfigPath: "hotload.yaml",
		Changed:    []string{"app.c"},
		DOT:        true,
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "app.a (always-reload)\napp.b\napp.c\n")
	assert.Contains(t, out.String(), "digraph hotload {")
}

func TestApp_Plan_SkipBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	comp := mocks.NewMockCompiler(ctrl)

	loader.EXPECT().LoadFile("hotload.yaml").Return(&domain.Config{}, nil)
	comp.EXPECT().Units(gomock.Any()).Return(chain(), nil)

	var out bytes.Buffer
	a := newApp(ctrl, loader, comp, nil, nil)
	err := a.Plan(t.Context(), app.PlanOptions{
		ConfigPath: "hotload.yaml",
		Changed:    []string{"app.b"},
		SkipBuild:  true,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "app.a\napp.b\n", out.String())
}

func TestApp_Plan_UnknownModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	comp := mocks.NewMockCompiler(ctrl)

	loader.EXPECT().LoadFile("hotload.yaml").Return(&domain.Config{}, nil)
	comp.EXPECT().Units(gomock.Any()).Return(chain(), nil)

	a := newApp(ctrl, loader, comp, nil, nil)
	err := a.Plan(t.Context(), app.PlanOptions{
		ConfigPath: "hotload.yaml",
		Changed:    []string{"app.missing"},
		SkipBuild:  true,
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownModule.Error())
}

func TestApp_Plan_CompileError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	comp := mocks.NewMockCompiler(ctrl)

	loader.EXPECT().LoadFile("hotload.yaml").Return(&domain.Config{}, nil)
	comp.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.CompileError{
		Exception: domain.Exception{Text: "unexpected token"},
	})

	a := newApp(ctrl, loader, comp, nil, nil)
	err := a.Plan(t.Context(), app.PlanOptions{ConfigPath: "hotload.yaml", Changed: []string{"app.a"}}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected token")
}

func TestApp_Plan_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigNotFound)

	a := newApp(ctrl, loader, nil, nil, nil)
	err := a.Plan(t.Context(), app.PlanOptions{Changed: []string{"app.a"}}, &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func events(ch <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range ch {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	comp := mocks.NewMockCompiler(ctrl)
	w := mocks.NewMockWatcher(ctrl)

	root := t.TempDir()
	cfg := &domain.Config{Root: root, Watch: domain.WatchConfig{Paths: []string{root}}}

	// A previous run saw every origin except c.src.
	require.NoError(t, cas.NewStoreAt(root).Save(map[string]int64{"a.src": 1, "b.src": 1, "c.src": 0}))

	builds := make(chan struct{}, 4)
	ch := make(chan ports.WatchEvent)
	loader.EXPECT().LoadFile("hotload.yaml").Return(cfg, nil)
	comp.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ports.BuildRequest, ports.DiagnosticReporter) error {
			builds <- struct{}{}
			return nil
		}).Times(2)
	comp.EXPECT().Units(gomock.Any()).Return(chain(), nil).Times(2)
	w.EXPECT().Start(gomock.Any(), root).Return(nil)
	w.EXPECT().Events().Return(events(ch))
	w.EXPECT().Stop().Return(nil)

	server := &fakeServer{notify: make(chan struct{}, 1)}
	a := newApp(ctrl, loader, comp, server, w)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, app.WatchOptions{ConfigPath: "hotload.yaml"})
	}()

	<-builds
	select {
	case <-server.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("initial cycle did not reload")
	}

	ch <- ports.WatchEvent{Paths: []string{filepath.Join(root, "a.src")}}
	<-builds

	cancel()
	close(ch)
	require.NoError(t, <-done)

	server.mu.Lock()
	defer server.mu.Unlock()
	require.Len(t, server.evaluated, 1)
	assert.Contains(t, server.evaluated[0], domain.EntryReload+`(["app.a","app.b","app.c"]`)
}

func TestApp_Watch_WatcherError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().LoadFile("hotload.yaml").Return(&domain.Config{Root: t.TempDir()}, nil)

	a := app.New(
		loader,
		quietLogger(ctrl),
		telemetry.NewOTelTracer("test"),
		clock{},
		&fakeServer{},
		overlay.NewTerminal(&bytes.Buffer{}),
		compiler.Factory(func(*domain.Config) ports.Compiler { return nil }),
		watcher.Factory(func(*domain.Config) (ports.Watcher, error) { return nil, domain.ErrStatFailed }),
	).WithDisableOTel()

	err := a.Watch(t.Context(), app.WatchOptions{ConfigPath: "hotload.yaml"})
	require.ErrorIs(t, err, domain.ErrStatFailed)
}

func TestApp_Client(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)

	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "app"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, "app", "a.js"), []byte("a();"), 0o600))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := evaluator.NewServer(quietLogger(ctrl))
	srvCtx, stopServer := context.WithCancel(t.Context())
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.ServeListener(srvCtx, lis)
	}()
	t.Cleanup(func() {
		stopServer()
		<-serverDone
	})

	cfg := &domain.Config{Client: domain.ClientConfig{OutputDir: out}}
	loader.EXPECT().LoadFile("hotload.yaml").Return(cfg, nil)

	a := newApp(ctrl, loader, nil, nil, nil)
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- a.Client(ctx, app.ClientOptions{
			ConfigPath: "hotload.yaml",
			Addr:       lis.Addr().String(),
			Preload:    []string{"app.a"},
		})
	}()

	require.Eventually(t, srv.Connected, 5*time.Second, 10*time.Millisecond)

	got, err := srv.Evaluate(t.Context(), domain.EntryReload+`(["app.a"], {});`)
	require.NoError(t, err)
	assert.Equal(t, "nil", got)

	_, err = srv.Evaluate(t.Context(), "hotload.client.unknown();")
	require.Error(t, err)

	cancel()
	require.NoError(t, <-done)
}
