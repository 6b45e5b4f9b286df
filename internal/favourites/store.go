// Package favourites persists a short list of favourite city names to a JSON file.
package favourites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// DefaultMax is the number of favourites kept when no limit is configured.
const DefaultMax = 3

var (
	ErrAlreadyExists = errors.New("already in favourites")
	ErrNotFound      = errors.New("not in favourites")
	ErrFull          = errors.New("favourites full")
)

// Store is a file-backed, ordered list of city names. Every successful
// mutation rewrites the whole file.
type Store struct {
	path   string
	max    int
	logger *slog.Logger

	mu     sync.Mutex
	cities []string
}

// Open loads the favourites file at path. A missing file starts an empty
// list; unreadable JSON is logged and also starts an empty list.
func Open(path string, limit int, logger *slog.Logger) (*Store, error) {
	if limit <= 0 {
		limit = DefaultMax
	}
	s := &Store{path: path, max: limit, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.cities = []string{}
	case err != nil:
		return nil, fmt.Errorf("read favourites: %w", err)
	default:
		if err := json.Unmarshal(data, &s.cities); err != nil {
			logger.Warn("favourites file is not valid JSON, starting empty", "path", path, "error", err)
			s.cities = []string{}
		}
		if s.cities == nil {
			s.cities = []string{}
		}
	}

	return s, nil
}

// Max returns the configured capacity.
func (s *Store) Max() int {
	return s.max
}

// List returns a copy of the favourites in insertion order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cities)
}

// Len returns the number of favourites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cities)
}

// Contains reports whether city is a favourite. Matching is exact.
func (s *Store) Contains(city string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.cities, city)
}

// CanAdd returns the error Add would fail with before any lookup is made.
func (s *Store) CanAdd(city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkAdd(city)
}

// Add appends city and persists the list.
func (s *Store) Add(city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAdd(city); err != nil {
		return err
	}
	return s.commit(append(slices.Clone(s.cities), city))
}

// Remove deletes city and persists the list.
func (s *Store) Remove(city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.cities, city)
	if i == -1 {
		return ErrNotFound
	}
	return s.commit(slices.Delete(slices.Clone(s.cities), i, i+1))
}

// CanReplace returns the error Replace would fail with before any lookup is made.
func (s *Store) CanReplace(oldCity, newCity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkReplace(oldCity, newCity)
}

// Replace swaps oldCity for newCity in place and persists the list.
func (s *Store) Replace(oldCity, newCity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReplace(oldCity, newCity); err != nil {
		return err
	}
	next := slices.Clone(s.cities)
	next[slices.Index(next, oldCity)] = newCity
	return s.commit(next)
}

// CheckReadiness reports whether the favourites file can still be used: it
// must be absent or a regular file that can be stat'ed.
func (s *Store) CheckReadiness(_ context.Context) error {
	info, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("favourites file: %w", err)
	case !info.Mode().IsRegular():
		return fmt.Errorf("favourites file %s is not a regular file", s.path)
	}
	return nil
}

func (s *Store) checkAdd(city string) error {
	if slices.Contains(s.cities, city) {
		return ErrAlreadyExists
	}
	if len(s.cities) >= s.max {
		return ErrFull
	}
	return nil
}

func (s *Store) checkReplace(oldCity, newCity string) error {
	if !slices.Contains(s.cities, oldCity) {
		return ErrNotFound
	}
	if slices.Contains(s.cities, newCity) {
		return ErrAlreadyExists
	}
	return nil
}

// commit writes next to disk and only then makes it the in-memory list, so a
// failed write leaves the store unchanged.
func (s *Store) commit(next []string) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode favourites: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create favourites dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write favourites: %w", err)
	}
	s.cities = next
	return nil
}
