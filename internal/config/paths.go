package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".config/swatch"
	ConfigFileName = "config.toml"
	EnvFileName    = ".env"
)

// Paths provides path resolution for swatch files.
type Paths struct {
	configDir string // Directory holding config.toml
	workDir   string // Base for relative reference paths and .env
}

// NewPaths creates a new Paths resolver.
func NewPaths(configDir, workDir string) *Paths {
	return &Paths{
		configDir: configDir,
		workDir:   workDir,
	}
}

// DefaultPaths resolves ~/.config/swatch and the current working directory.
// Either may be empty if the OS can't tell us.
func DefaultPaths() *Paths {
	var configDir string
	if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ConfigDirName)
	}
	workDir, _ := os.Getwd()
	return NewPaths(configDir, workDir)
}

// ConfigDir returns the directory for the config file.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigPath returns the path to the config file, or "" if unknown.
func (p *Paths) ConfigPath() string {
	if p.configDir == "" {
		return ""
	}
	return filepath.Join(p.configDir, ConfigFileName)
}

// WorkDir returns the base directory for relative paths.
func (p *Paths) WorkDir() string {
	return p.workDir
}

// EnvPath returns the path to the .env file in the working directory.
func (p *Paths) EnvPath() string {
	return filepath.Join(p.workDir, EnvFileName)
}

// Resolve makes a relative path absolute against the working directory.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || p.workDir == "" {
		return path
	}
	return filepath.Join(p.workDir, path)
}
