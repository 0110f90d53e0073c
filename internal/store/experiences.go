package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/gtri-thrive/toolkit/internal/types"
)

// ErrExperienceNotFound is returned when no saved experience has the
// requested id.
var ErrExperienceNotFound = fmt.Errorf("experience not found")

// ExperienceStore manages the persisted list of saved experiences under the
// starExperiences key. The whole list is replaced on every write.
type ExperienceStore struct {
	kv *Store

	// now is the clock used for id assignment; overridable in tests.
	now func() time.Time
}

// NewExperienceStore wraps a key-value store.
func NewExperienceStore(kv *Store) *ExperienceStore {
	return &ExperienceStore{kv: kv, now: time.Now}
}

// List returns all saved experiences sorted by id (creation order).
func (s *ExperienceStore) List() []types.SavedExperience {
	var list []types.SavedExperience
	s.kv.Load(KeyExperiences, &list)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Get returns the experience with the given id.
func (s *ExperienceStore) Get(id int64) (types.SavedExperience, error) {
	for _, exp := range s.List() {
		if exp.ID == id {
			return exp, nil
		}
	}
	return types.SavedExperience{}, fmt.Errorf("%w: id %d", ErrExperienceNotFound, id)
}

// Save persists an experience. A zero id means create: the experience gets a
// creation-time id and a gradient derived from it. A non-zero id means
// update in place; the stored ID and Gradient are preserved verbatim and the
// update fails if the id is unknown.
func (s *ExperienceStore) Save(exp types.SavedExperience) (types.SavedExperience, error) {
	list := s.List()

	if exp.ID == 0 {
		exp.ID = s.now().UnixMilli()
		// Ids double as identity keys; nudge forward on the rare same-
		// millisecond collision.
		for s.contains(list, exp.ID) {
			exp.ID++
		}
		exp.Gradient = GradientFor(exp.ID)
		list = append(list, exp)
		if err := s.kv.Save(KeyExperiences, list); err != nil {
			return types.SavedExperience{}, err
		}
		return exp, nil
	}

	for i := range list {
		if list[i].ID == exp.ID {
			exp.Gradient = list[i].Gradient
			list[i] = exp
			if err := s.kv.Save(KeyExperiences, list); err != nil {
				return types.SavedExperience{}, err
			}
			return exp, nil
		}
	}
	return types.SavedExperience{}, fmt.Errorf("%w: id %d", ErrExperienceNotFound, exp.ID)
}

// Delete removes the experience with the given id by filtering it out of the
// persisted list. Deleting an unknown id is a no-op.
func (s *ExperienceStore) Delete(id int64) error {
	list := s.List()
	filtered := list[:0]
	for _, exp := range list {
		if exp.ID != id {
			filtered = append(filtered, exp)
		}
	}
	return s.kv.Save(KeyExperiences, filtered)
}

func (s *ExperienceStore) contains(list []types.SavedExperience, id int64) bool {
	for _, exp := range list {
		if exp.ID == id {
			return true
		}
	}
	return false
}

// GradientFor derives the cosmetic card gradient from an experience id. The
// value is display-only and preserved verbatim across edits.
func GradientFor(id int64) string {
	hue1 := id % 360
	hue2 := (hue1 + 40) % 360
	return fmt.Sprintf("linear-gradient(135deg, hsl(%d, 70%%, 80%%) 0%%, hsl(%d, 70%%, 80%%) 100%%)", hue1, hue2)
}
