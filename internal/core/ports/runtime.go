package ports

import "go.trai.ch/hotload/internal/core/domain"

// ModuleLoader executes modules inside the client runtime.
//
//go:generate mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type ModuleLoader interface {
	// Require (re-)executes the module's compiled body. Top-level effects run again.
	Require(id domain.ModuleID) error
	// AddDependency registers a foreign dependency bundle delivered by the coordinator.
	AddDependency(origin string, provides, requires []string) error
}

// ReloadHook is implemented by runtimes that can signal when pending loads have settled.
type ReloadHook interface {
	// AfterReloads calls callback once every module queued for loading has run.
	AfterReloads(callback func())
}

// Display renders diagnostics in the client. Every call must invoke done exactly once
// when the display operation has finished.
type Display interface {
	// ShowWarning renders one warning in full detail.
	ShowWarning(w domain.Warning, done func())
	// AppendWarnings adds summaries of further warnings to the current display.
	AppendWarnings(ws []domain.Warning, done func())
	// ShowException renders an exception in full detail.
	ShowException(e domain.Exception, done func())
	// ShowSuccess flashes a transient success indicator.
	ShowSuccess(done func())
}
