// Package loader provides a headless client module loader that re-executes modules
// by reading their compiled artifacts from the build output directory.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArtifactExt is the extension of compiled module artifacts.
const ArtifactExt = ".js"

var (
	_ ports.ModuleLoader = (*Loader)(nil)
	_ ports.ReloadHook   = (*Loader)(nil)
)

// Foreign is a dependency bundle registered by the coordinator.
type Foreign struct {
	Origin   string
	Provides []string
	Requires []string
}

// Loader implements ports.ModuleLoader over an output directory.
type Loader struct {
	dir    string
	logger ports.Logger

	mu      sync.Mutex
	loads   map[string]int
	foreign map[string]Foreign
}

// New creates a Loader reading artifacts from dir.
func New(dir string, logger ports.Logger) *Loader {
	return &Loader{
		dir:     dir,
		logger:  logger,
		loads:   make(map[string]int),
		foreign: make(map[string]Foreign),
	}
}

// ArtifactPath returns where the artifact for a mangled module id lives:
// dots become directory separators.
func (l *Loader) ArtifactPath(mangled string) string {
	rel := strings.ReplaceAll(mangled, ".", string(filepath.Separator)) + ArtifactExt
	return filepath.Join(l.dir, rel)
}

// Require reads the module's artifact. Ids provided by a registered foreign bundle
// load without an artifact.
func (l *Loader) Require(id domain.ModuleID) error {
	mangled := id.String()

	l.mu.Lock()
	f, isForeign := l.foreign[mangled]
	l.mu.Unlock()

	if isForeign {
		l.record(mangled)
		l.logger.Debug(fmt.Sprintf("loaded %s from %s", mangled, f.Origin))
		return nil
	}

	path := l.ArtifactPath(mangled)
	//nolint:gosec // Path is derived from the configured output directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.With(zerr.With(domain.ErrModuleNotFound, "module", mangled), "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrReloadFailed.Error()), "module", mangled)
	}

	l.record(mangled)
	l.logger.Debug(fmt.Sprintf("loaded %s (%d bytes)", mangled, len(data)))
	return nil
}

// AddDependency registers a foreign bundle under each id it provides.
func (l *Loader) AddDependency(origin string, provides, requires []string) error {
	if len(provides) == 0 {
		return zerr.With(domain.ErrMalformedPayload, "origin", origin)
	}

	f := Foreign{Origin: origin, Provides: provides, Requires: requires}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range provides {
		l.foreign[p] = f
	}
	return nil
}

// AfterReloads calls callback at once: every load completes before Require returns.
func (l *Loader) AfterReloads(callback func()) {
	callback()
}

// Loads returns how often a mangled module id has been loaded.
func (l *Loader) Loads(mangled string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[mangled]
}

// Foreign returns the bundle registered for a provided id.
func (l *Loader) Foreign(provided string) (Foreign, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.foreign[provided]
	return f, ok
}

func (l *Loader) record(mangled string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads[mangled]++
}
