package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindReferenceFrom finds a reference file by walking up from startDir to
// the filesystem root. Returns "" if no directory holds it. The nearest match wins. Absolute names are
// returned as-is when they exist.
func FindReferenceFrom(startDir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", nil
	}

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}

		// Move up to parent
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
