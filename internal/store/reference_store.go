package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
)

// FileReferenceStore implements ReferenceStore with a JSON file mapping
// identifiers to hex colours.
type FileReferenceStore struct {
	path string
}

// NewReferenceStore creates a reference store for the given JSON file.
func NewReferenceStore(path string) *FileReferenceStore {
	return &FileReferenceStore{path: path}
}

// Path returns the backing file path.
func (s *FileReferenceStore) Path() string {
	return s.path
}

// Exists reports whether the backing file exists.
func (s *FileReferenceStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and validates the whole table.
func (s *FileReferenceStore) Load() (*model.Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.ReferenceNotFound(s.path)
		}
		return nil, swerr.LoadFailed(s.path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, swerr.LoadFailed(s.path, err)
	}

	table, err := model.NewTable(raw)
	if err != nil {
		return nil, swerr.LoadFailed(s.path, err)
	}
	return table, nil
}

// Save writes the table as indented JSON with sorted keys.
// The file is replaced atomically so watchers never see a partial write.
func (s *FileReferenceStore) Save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".swatch-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
