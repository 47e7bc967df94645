// Package fs provides file system adapters: origin modification times and source excerpts.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/hotload/internal/core/ports"
)

var _ ports.ModTimeSource = (*ModTimes)(nil)

// ModTimes reads modification times with os.Stat.
type ModTimes struct{}

// NewModTimes creates a new ModTimes.
func NewModTimes() *ModTimes {
	return &ModTimes{}
}

// ModTime returns the origin's modification time in UnixNano.
// Origins may be plain paths or file:// URLs. Any other URL scheme reports 0
// and therefore never counts as changed.
func (m *ModTimes) ModTime(origin string) (int64, error) {
	path, ok := localPath(origin)
	if !ok {
		return 0, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}

// localPath resolves origin to a file path. It reports false for non-file URLs.
func localPath(origin string) (string, bool) {
	if !strings.Contains(origin, "://") && !strings.HasPrefix(origin, "file:") {
		return origin, true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	if u.Opaque != "" {
		return filepath.FromSlash(u.Opaque), true
	}
	return filepath.FromSlash(u.Path), true
}
