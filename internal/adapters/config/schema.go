package config

// Hotfile represents the structure of the hotload.yaml configuration file.
type Hotfile struct {
	Version string    `yaml:"version"`
	Build   BuildDTO  `yaml:"build"`
	Watch   WatchDTO  `yaml:"watch"`
	Reload  ReloadDTO `yaml:"reload"`
	Server  ServerDTO `yaml:"server"`
	Client  ClientDTO `yaml:"client"`
}

// BuildDTO configures the compiler invocation.
type BuildDTO struct {
	Cmd      []string          `yaml:"cmd"`
	Targets  []string          `yaml:"targets"`
	Manifest string            `yaml:"manifest"`
	Env      map[string]string `yaml:"env"`
}

// WatchDTO configures the file watcher.
type WatchDTO struct {
	Paths    []string `yaml:"paths"`
	Debounce string   `yaml:"debounce"`
}

// ReloadDTO configures the reload policy.
type ReloadDTO struct {
	LoadWarningedCode bool `yaml:"loadWarningedCode"`
	ExcerptLines      *int `yaml:"excerptLines"`
}

// ServerDTO configures the evaluation endpoint.
type ServerDTO struct {
	Addr string `yaml:"addr"`
}

// ClientDTO configures the client runtime.
type ClientDTO struct {
	Immutable        []string `yaml:"immutable"`
	AfterReloadDelay string   `yaml:"afterReloadDelay"`
	OutputDir        string   `yaml:"outputDir"`
}
