// Package config provides the configuration loader for hotload.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const supportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds hotload.yaml in cwd or the nearest parent and resolves it.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile resolves the configuration file at path.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var hf Hotfile
	if err := readAndUnmarshalYAML(abs, &hf); err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	if hf.Version != "" && hf.Version != supportedVersion {
		return nil, zerr.With(domain.ErrUnsupportedVersion, "version", hf.Version)
	}

	cfg, err := l.resolve(filepath.Dir(abs), &hf)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return cfg, nil
}

func (l *Loader) resolve(root string, hf *Hotfile) (*domain.Config, error) {
	debounce, err := parseDuration("watch.debounce", hf.Watch.Debounce, domain.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	afterReload, err := parseDuration("client.afterReloadDelay", hf.Client.AfterReloadDelay, domain.DefaultAfterReloadDelay)
	if err != nil {
		return nil, err
	}

	if len(hf.Build.Cmd) == 0 {
		l.Logger.Warn("no build command configured in " + domain.ConfigFileName)
	}

	cfg := &domain.Config{
		Root: root,
		Build: domain.BuildConfig{
			Cmd:      slices.Clone(hf.Build.Cmd),
			Targets:  slices.Clone(hf.Build.Targets),
			Manifest: resolvePath(root, hf.Build.Manifest),
			Env:      hf.Build.Env,
		},
		Watch: domain.WatchConfig{
			Paths:    resolvePaths(root, hf.Watch.Paths),
			Debounce: debounce,
		},
		Reload: domain.ReloadConfig{
			LoadWarningedCode: hf.Reload.LoadWarningedCode,
			ExcerptLines:      domain.DefaultExcerptLines,
		},
		Server: domain.ServerConfig{Addr: hf.Server.Addr},
		Client: domain.ClientConfig{
			Immutable:        hf.Client.Immutable,
			AfterReloadDelay: afterReload,
			OutputDir:        resolvePath(root, hf.Client.OutputDir),
		},
	}

	if hf.Reload.ExcerptLines != nil {
		cfg.Reload.ExcerptLines = max(*hf.Reload.ExcerptLines, 0)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultAddr
	}
	if len(cfg.Watch.Paths) == 0 {
		cfg.Watch.Paths = []string{root}
	}
	if cfg.Client.Immutable == nil {
		cfg.Client.Immutable = slices.Clone(domain.DefaultImmutablePrefixes)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		err := zerr.With(domain.ErrInvalidDuration, "field", field)
		return 0, zerr.With(err, "value", raw)
	}
	return d, nil
}

func resolvePath(root, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, p))
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(root, p)
	}
	return out
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
