// Package changes tracks unit modification times across compile cycles.
package changes

import (
	"maps"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/hotload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Detector holds the watermark of last-observed modification times, keyed by origin.
// It is not safe for concurrent use; the coordinator owns it.
type Detector struct {
	source ports.ModTimeSource
	store  ports.WatermarkStore
	logger ports.Logger

	watermark map[string]int64
	loaded    bool
}

// NewDetector creates a Detector. store may be nil, in which case the watermark lives in memory only.
func NewDetector(source ports.ModTimeSource, store ports.WatermarkStore, logger ports.Logger) *Detector {
	return &Detector{
		source:    source,
		store:     store,
		logger:    logger,
		watermark: make(map[string]int64),
	}
}

// Detect returns the units whose origin was modified after its watermark, in input order,
// then advances the watermark for those origins. Untouched origins keep their watermark,
// so a second call without modifications returns nothing.
func (d *Detector) Detect(units []domain.SourceUnit) []domain.ModuleID {
	d.load()

	current := d.observe(units)
	var changed []domain.ModuleID
	advanced := make(map[string]int64)
	for i := range units {
		mtime, ok := current[units[i].Origin]
		if !ok || mtime <= d.watermark[units[i].Origin] {
			continue
		}
		changed = append(changed, units[i].ID)
		advanced[units[i].Origin] = mtime
	}

	if len(advanced) > 0 {
		maps.Copy(d.watermark, advanced)
		d.save()
	}
	return changed
}

// Prime records the current modification time of every unit without reporting changes.
// A watermark is only ever raised.
func (d *Detector) Prime(units []domain.SourceUnit) {
	d.load()

	dirty := false
	for origin, mtime := range d.observe(units) {
		if mtime > d.watermark[origin] {
			d.watermark[origin] = mtime
			dirty = true
		}
	}
	if dirty {
		d.save()
	}
}

// Seeded reports whether any watermark exists, in memory or in the store.
func (d *Detector) Seeded() bool {
	d.load()
	return len(d.watermark) > 0
}

// Watermark returns the stored modification time for origin, or zero.
func (d *Detector) Watermark(origin string) int64 {
	return d.watermark[origin]
}

// observe reads each distinct origin once. Units without an origin and unreadable origins
// are logged and left out.
func (d *Detector) observe(units []domain.SourceUnit) map[string]int64 {
	current := make(map[string]int64, len(units))
	for i := range units {
		origin := units[i].Origin
		if origin == "" {
			d.logger.Debug("not tracked, unit has no origin: " + units[i].ID.String())
			continue
		}
		if _, seen := current[origin]; seen {
			continue
		}
		mtime, err := d.source.ModTime(origin)
		if err != nil {
			d.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "module", units[i].ID.String()))
			continue
		}
		current[origin] = mtime
	}
	return current
}

func (d *Detector) load() {
	if d.loaded || d.store == nil {
		return
	}
	d.loaded = true

	stored, err := d.store.Load()
	if err != nil {
		d.logger.Error(err)
		return
	}
	for origin, mtime := range stored {
		if mtime > d.watermark[origin] {
			d.watermark[origin] = mtime
		}
	}
}

func (d *Detector) save() {
	if d.store == nil {
		return
	}
	if err := d.store.Save(maps.Clone(d.watermark)); err != nil {
		d.logger.Error(err)
	}
}
