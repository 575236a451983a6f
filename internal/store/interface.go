package store

import "github.com/amterp/swatch/internal/model"

// ConfigStore handles user config persistence.
type ConfigStore interface {
	Load() (*model.Config, error)
	Save(config *model.Config) error
	EnsureExists() error
}

// ReferenceStore handles reference table persistence.
type ReferenceStore interface {
	Load() (*model.Table, error)
	Save(entries map[string]string) error
	Exists() bool
	Path() string
}
