package persona

import (
	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

// Store persists fetched personas locally so cards survive the service's
// in-memory storage being recycled.
type Store struct {
	kv *store.Store
}

// NewStore creates a persona store over kv.
func NewStore(kv *store.Store) *Store {
	return &Store{kv: kv}
}

// List returns the stored personas, newest first.
func (s *Store) List() []types.PersonaData {
	var personas []types.PersonaData
	s.kv.Load(store.KeyPersonas, &personas)
	for i := range personas {
		personas[i].Normalize()
	}
	Sort(personas)
	return personas
}

// Add prepends p, replacing any stored persona with the same id.
func (s *Store) Add(p types.PersonaData) error {
	personas := s.List()
	filtered := personas[:0]
	for _, existing := range personas {
		if existing.ID != p.ID {
			filtered = append(filtered, existing)
		}
	}
	return s.kv.Save(store.KeyPersonas, append([]types.PersonaData{p}, filtered...))
}

// Replace overwrites the stored list wholesale, used after a full fetch.
func (s *Store) Replace(personas []types.PersonaData) error {
	return s.kv.Save(store.KeyPersonas, personas)
}
