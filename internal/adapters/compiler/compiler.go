// Package compiler wraps an external compiler command as a ports.Compiler.
package compiler

import (
	"context"
	"errors"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler runs the configured build command and reads its unit manifest.
type Compiler struct {
	logger   ports.Logger
	cmd      []string
	dir      string
	manifest string
	env      map[string]string

	mu     sync.Mutex
	active bool
}

// NewCompiler creates a Compiler for cfg. Commands run in dir; relative origins
// in the manifest resolve against it.
func NewCompiler(logger ports.Logger, cfg domain.BuildConfig, dir string) *Compiler {
	return &Compiler{
		logger:   logger,
		cmd:      slices.Clone(cfg.Cmd),
		dir:      dir,
		manifest: cfg.Manifest,
		env:      maps.Clone(cfg.Env),
	}
}

// Build runs the command with req.Targets appended. Each stderr line of the form
// "WARNING: file:line:col: text" or "ERROR: file:line:col: text" is reported as a
// diagnostic; other output is logged at debug level.
func (c *Compiler) Build(ctx context.Context, req ports.BuildRequest, report ports.DiagnosticReporter) error {
	if len(c.cmd) == 0 {
		return domain.ErrNoBuildCommand
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return domain.ErrBuildInProgress
	}
	c.active = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
	}()

	name := c.cmd[0]
	args := append(slices.Clone(c.cmd[1:]), req.Targets...)

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = c.dir
	cmd.Env = resolveEnvironment(os.Environ(), c.env, req.Env)

	stdout := &lineWriter{emit: c.logger.Debug}
	diags := newDiagnosticWriter(c.logger, report)
	cmd.Stdout = stdout
	cmd.Stderr = diags

	runErr := cmd.Run()
	stdout.Flush()
	diags.Flush()
	if runErr == nil {
		return nil
	}

	if first, ok := diags.FirstError(); ok {
		return &domain.CompileError{Exception: domain.Exception{
			Location: first.Location,
			Text:     first.Detail,
		}}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(runErr, domain.ErrBuildFailed.Error()), "exit_code", exitCode)
}

// Units reads the manifest written by the last build.
func (c *Compiler) Units(_ context.Context) ([]domain.SourceUnit, error) {
	if c.manifest == "" {
		return nil, zerr.With(domain.ErrManifestReadFailed, "reason", "no manifest configured")
	}
	return ReadManifest(c.manifest, c.dir)
}

// resolveEnvironment merges the system environment, configured variables and
// per-request "KEY=VALUE" entries, later sources overriding earlier ones.
func resolveEnvironment(sysEnv []string, cfgEnv map[string]string, reqEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(cfgEnv)+len(reqEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, cfgEnv)
	for _, entry := range reqEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

func resolveOrigin(dir, origin string) string {
	if origin == "" || strings.Contains(origin, "://") || strings.HasPrefix(origin, "file:") || filepath.IsAbs(origin) {
		return origin
	}
	return filepath.Join(dir, origin)
}
