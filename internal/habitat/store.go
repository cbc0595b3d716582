package habitat

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store is an in-memory habitat catalogue. It is safe for concurrent use.
type Store struct {
	source Source
	logger *slog.Logger

	mu       sync.RWMutex
	habitats []Habitat
	byID     map[string]int
	animals  map[string]animalRef
}

type animalRef struct {
	habitat int
	animal  int
}

// NewStore creates an empty store backed by source. Call Reload to fill it.
func NewStore(source Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source:  source,
		logger:  logger.With("component", "habitat"),
		byID:    map[string]int{},
		animals: map[string]animalRef{},
	}
}

// Reload replaces the catalogue with a fresh load from the source. On error
// the previous catalogue is kept.
func (s *Store) Reload(ctx context.Context) error {
	habitats, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]int, len(habitats))
	animals := make(map[string]animalRef)
	for i, h := range habitats {
		byID[h.ID] = i
		for j, a := range h.Animals {
			animals[a.ID] = animalRef{habitat: i, animal: j}
		}
	}

	s.mu.Lock()
	s.habitats = habitats
	s.byID = byID
	s.animals = animals
	s.mu.Unlock()

	s.logger.Info("habitats loaded", "count", len(habitats), "animals", len(animals))
	return nil
}

// List returns all habitats sorted by id.
func (s *Store) List() []Habitat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Habitat, len(s.habitats))
	copy(out, s.habitats)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the habitat with the given id.
func (s *Store) Get(id string) (Habitat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Habitat{}, fmt.Errorf("habitat %q: %w", id, ErrNotFound)
	}
	return s.habitats[i], nil
}

// Animal returns the animal with the given id and the id of its habitat.
func (s *Store) Animal(id string) (Animal, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.animals[id]
	if !ok {
		return Animal{}, "", fmt.Errorf("animal %q: %w", id, ErrNotFound)
	}
	h := s.habitats[ref.habitat]
	return h.Animals[ref.animal], h.ID, nil
}

// Watch reloads the store whenever the file at path is written, until ctx
// is done. The parent directory is watched so editors that replace the file
// are handled too.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("habitat reload failed", "path", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("habitat watcher error", "error", err)
		}
	}
}
