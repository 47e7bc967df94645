package ports

import "go.trai.ch/hotload/internal/core/domain"

// ModTimeSource reports modification times of unit origins.
//
//go:generate mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks
type ModTimeSource interface {
	// ModTime returns the origin's modification time in UnixNano.
	// Origins that cannot change, such as remote URLs, report zero.
	ModTime(origin string) (int64, error)
}

// ExcerptSource reads the source lines surrounding a diagnostic.
type ExcerptSource interface {
	// Excerpt returns the lines around loc, or nil if the file cannot be read.
	Excerpt(loc domain.Location) *domain.FileExcerpt
}

// WatermarkStore persists the change detector's watermark between runs.
type WatermarkStore interface {
	// Load returns the stored watermark. A missing store yields an empty map.
	Load() (map[string]int64, error)
	// Save replaces the stored watermark.
	Save(watermark map[string]int64) error
}
