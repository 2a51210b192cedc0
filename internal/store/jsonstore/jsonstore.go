package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/idilsaglam/lostfound/internal/model"
)

// JSON-backed item storage. Single file, human-readable, portable.
// No locking: one writer at a time (the CLI, or the API server behind its mutex).

const DefaultFileName = "lostfound.json"

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("item not found")

type Store struct {
	path string
}

// New returns a store for path; an empty path means ./lostfound.json.
func New(path string) *Store {
	if path == "" {
		path = DefaultFileName
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns an empty slice when the file does not exist yet.
func (s *Store) Load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *Store) Save(items []model.Item) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Add stores a new report. It assigns an id when the item has none and
// defaults the status to open.
func (s *Store) Add(it model.Item) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Status == 0 {
		it.Status = model.StatusOpen
	}
	for _, existing := range items {
		if existing.ID == it.ID {
			return model.Item{}, fmt.Errorf("duplicate id %q", it.ID)
		}
	}
	items = append(items, it)
	if err := s.Save(items); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (s *Store) Get(id string) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return items[idx], nil
}

func (s *Store) SetStatus(id string, st model.Status) (model.Item, error) {
	items, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return model.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	items[idx].Status = st
	if err := s.Save(items); err != nil {
		return model.Item{}, err
	}
	return items[idx], nil
}

func (s *Store) Remove(id string) error {
	items, err := s.Load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.Save(items)
}

// Seed writes the sample reports when the file does not exist yet.
// It reports whether anything was written.
func (s *Store) Seed() (bool, error) {
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat: %w", err)
	}
	if err := s.Save(SampleItems()); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
