package model

// Defaults for values missing from the config file.
const (
	DefaultReference = "colormap.json"
	DefaultColour    = "#cccccc"
	DefaultWheelSize = 300
	DefaultPort      = 3000
)

// Config represents the user's swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type Config struct {
	Schema        string `toml:"swatch_schema"`
	Reference     string `toml:"reference,omitempty"`      // Path to the reference colour map
	DefaultColour string `toml:"default_colour,omitempty"` // Initial colour for pick/serve
	Restrict      bool   `toml:"restrict,omitempty"`       // Snap palettes to the reference table by default
	WheelSize     int    `toml:"wheel_size,omitempty"`     // Wheel image edge length in pixels
	Port          int    `toml:"port,omitempty"`           // Port for swatch serve
	Editor        string `toml:"editor,omitempty"`         // Editor for swatch init --edit
}

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Reference == "" {
		c.Reference = DefaultReference
	}
	if c.DefaultColour == "" {
		c.DefaultColour = DefaultColour
	}
	if c.WheelSize <= 0 {
		c.WheelSize = DefaultWheelSize
	}
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
}
