// Package presets persists the last confirmed range configuration per axis
// in a YAML file so the range dialog can be prefilled in later sessions.
package presets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/colonyops/planar/internal/rounding"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no preset is stored for an axis.
var ErrNotFound = errors.New("preset not found")

// File is the root YAML structure stored on disk.
type File struct {
	Ranges []rounding.RangeConfig `yaml:"ranges"`
}

// Store implements preset persistence on top of a single YAML file.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a store backed by the file at path. The file is created on
// the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// List returns every stored preset ordered by axis.
func (s *Store) List(ctx context.Context) ([]rounding.RangeConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	slices.SortFunc(file.Ranges, func(a, b rounding.RangeConfig) int {
		return strings.Compare(a.Axis, b.Axis)
	})
	return file.Ranges, nil
}

// Get returns the preset for axis. Returns ErrNotFound if none is stored.
func (s *Store) Get(ctx context.Context, axis string) (rounding.RangeConfig, error) {
	if err := ctx.Err(); err != nil {
		return rounding.RangeConfig{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return rounding.RangeConfig{}, err
	}

	for _, cfg := range file.Ranges {
		if strings.EqualFold(cfg.Axis, axis) {
			return cfg, nil
		}
	}

	return rounding.RangeConfig{}, fmt.Errorf("axis %s: %w", axis, ErrNotFound)
}

// Save validates cfg and replaces any preset stored for the same axis.
func (s *Store) Save(ctx context.Context, cfg rounding.RangeConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Axis) == "" {
		return errors.New("preset axis cannot be empty")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid preset for axis %s: %w", cfg.Axis, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	file.Ranges = slices.DeleteFunc(file.Ranges, func(existing rounding.RangeConfig) bool {
		return strings.EqualFold(existing.Axis, cfg.Axis)
	})
	file.Ranges = append(file.Ranges, cfg)

	return s.save(file)
}

// Delete removes the preset for axis. Deleting a missing preset is not an error.
func (s *Store) Delete(ctx context.Context, axis string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	file.Ranges = slices.DeleteFunc(file.Ranges, func(existing rounding.RangeConfig) bool {
		return strings.EqualFold(existing.Axis, axis)
	})
	return s.save(file)
}

// load reads the preset file from disk.
// Returns an empty File if it doesn't exist.
func (s *Store) load() (File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read presets: %w", err)
	}

	if len(data) == 0 {
		return File{}, nil
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse presets %s: %w", s.path, err)
	}

	return file, nil
}

// save writes the preset file to disk atomically.
func (s *Store) save(file File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
