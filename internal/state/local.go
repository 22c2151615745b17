package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalStore persists a single cluster record as a YAML file.
type LocalStore struct {
	path string
}

// NewLocalStore creates a store backed by the file at path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// Save writes the record, creating parent directories as needed.
func (s *LocalStore) Save(ctx context.Context, rec *Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}

// Load reads the record back. A missing file maps to ErrNotFound; a file
// recording a different cluster is an error rather than a silent match.
func (s *LocalStore) Load(ctx context.Context, clusterName string) (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}

	if rec.ClusterName != clusterName {
		return nil, fmt.Errorf("state file %s records cluster %q, not %q", s.path, rec.ClusterName, clusterName)
	}
	return &rec, nil
}

// Delete removes the state file. Deleting a missing file succeeds.
func (s *LocalStore) Delete(ctx context.Context, clusterName string) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file %s: %w", s.path, err)
	}
	return nil
}
