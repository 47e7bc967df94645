// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/hotload/internal/core/domain"
)

// BuildRequest describes one compile invocation.
type BuildRequest struct {
	// Targets are the source roots or entry points handed to the compiler.
	Targets []string
	// Env holds extra environment variables in "KEY=VALUE" form.
	Env []string
}

// DiagnosticReporter receives diagnostics while a build runs, in the order the compiler emits them.
type DiagnosticReporter func(domain.CompilerDiagnostic)

// Compiler wraps the external compiler.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Build runs one compile. Diagnostics are passed to report as they occur, one at a time,
	// and never after Build returns.
	// A fatal failure is returned as an error; a *domain.CompileError carries its location.
	Build(ctx context.Context, req BuildRequest, report DiagnosticReporter) error

	// Units returns the source units of the most recent build in compiler order.
	Units(ctx context.Context) ([]domain.SourceUnit, error)
}
