package compiler

import (
	"os"

	"go.trai.ch/hotload/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest is the unit list the compiler writes after each build. JSON is accepted
// as it is a subset of YAML.
type Manifest struct {
	Units []UnitDTO `yaml:"units"`
}

// UnitDTO describes one compiled or foreign unit.
type UnitDTO struct {
	ID           string   `yaml:"id"`
	Provides     []string `yaml:"provides"`
	Requires     []string `yaml:"requires"`
	Origin       string   `yaml:"origin"`
	LastModified int64    `yaml:"lastModified"`
	Foreign      bool     `yaml:"foreign"`
	AlwaysReload bool     `yaml:"alwaysReload"`
	NeverReload  bool     `yaml:"neverReload"`
}

// ReadManifest parses the manifest at path. Relative origins resolve against dir.
func ReadManifest(path, dir string) ([]domain.SourceUnit, error) {
	//nolint:gosec // Path comes from project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}

	units := make([]domain.SourceUnit, 0, len(m.Units))
	for i, dto := range m.Units {
		if dto.ID == "" {
			err := zerr.With(domain.ErrManifestParseFailed, "path", path)
			return nil, zerr.With(err, "unit_index", i)
		}
		units = append(units, domain.SourceUnit{
			ID:           domain.NewModuleID(dto.ID),
			Provides:     domain.ModuleIDs(dto.Provides...),
			Requires:     domain.ModuleIDs(dto.Requires...),
			Origin:       resolveOrigin(dir, dto.Origin),
			LastModified: dto.LastModified,
			Foreign:      dto.Foreign,
			Eligibility: domain.Eligibility{
				AlwaysReload: dto.AlwaysReload,
				NeverReload:  dto.NeverReload,
			},
		})
	}
	return units, nil
}
