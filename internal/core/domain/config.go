package domain

import "time"

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory containing hotload.yaml. Relative paths resolve against it.
	Root   string
	Build  BuildConfig
	Watch  WatchConfig
	Reload ReloadConfig
	Server ServerConfig
	Client ClientConfig
}

// BuildConfig configures the external compiler.
type BuildConfig struct {
	Cmd      []string
	Targets  []string
	Manifest string
	Env      map[string]string
}

// WatchConfig configures file watching.
type WatchConfig struct {
	Paths    []string
	Debounce time.Duration
}

// ReloadConfig configures the reload policy.
type ReloadConfig struct {
	// LoadWarningedCode reloads even when the cycle produced warnings.
	LoadWarningedCode bool
	ExcerptLines      int
}

// ServerConfig configures the evaluation channel endpoint.
type ServerConfig struct {
	Addr string
}

// ClientConfig configures the client runtime.
type ClientConfig struct {
	Immutable        []string
	AfterReloadDelay time.Duration
	OutputDir        string
}
