package ports

import "go.trai.ch/hotload/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds hotload.yaml starting at cwd and walking up, then parses it.
	Load(cwd string) (*domain.Config, error)
	// LoadFile parses the configuration at an explicit path.
	LoadFile(path string) (*domain.Config, error)
}
