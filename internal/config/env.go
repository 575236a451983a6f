package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/amterp/swatch/internal/model"
	"github.com/joho/godotenv"
)

// Environment variables that override config.toml.
const (
	EnvReference     = "SWATCH_REFERENCE"
	EnvDefaultColour = "SWATCH_DEFAULT_COLOUR"
	EnvRestrict      = "SWATCH_RESTRICT"
	EnvWheelSize     = "SWATCH_WHEEL_SIZE"
	EnvPort          = "SWATCH_PORT"
)

// LoadDotEnv loads a .env file into the process environment if present.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides config fields from SWATCH_* environment variables.
// Unparseable numeric or boolean values are ignored.
func ApplyEnv(cfg *model.Config) {
	if v := os.Getenv(EnvReference); v != "" {
		cfg.Reference = v
	}
	if v := os.Getenv(EnvDefaultColour); v != "" {
		cfg.DefaultColour = v
	}
	if v := os.Getenv(EnvRestrict); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Restrict = b
		}
	}
	cfg.WheelSize = parseIntOrDefault(os.Getenv(EnvWheelSize), cfg.WheelSize)
	cfg.Port = parseIntOrDefault(os.Getenv(EnvPort), cfg.Port)
}

// parseIntOrDefault parses a positive int, returning defaultValue otherwise.
func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
