package domain

import (
	"path/filepath"
	"time"
)

const (
	// HotloadDirName is the name of the internal workspace directory.
	HotloadDirName = ".hotload"

	// WatermarkFileName is the name of the persisted change-detector watermark.
	WatermarkFileName = "watermarks.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "hotload.yaml"

	// DefaultAddr is the address the evaluation channel listens on.
	DefaultAddr = "127.0.0.1:9500"

	// EvalPath is the HTTP path of the evaluation channel WebSocket endpoint.
	EvalPath = "/hotload/ws"

	// DefaultDebounce is the default file event coalescing window.
	DefaultDebounce = 50 * time.Millisecond

	// DefaultAfterReloadDelay is the fallback delay before after-reload fires when
	// the runtime has no post-load hook.
	DefaultAfterReloadDelay = 100 * time.Millisecond

	// DefaultExcerptLines is the number of context lines around a diagnostic.
	DefaultExcerptLines = 3

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultWatermarkPath returns the default location of the persisted watermark.
// It joins .hotload and watermarks.json.
func DefaultWatermarkPath() string {
	return filepath.Join(HotloadDirName, WatermarkFileName)
}
