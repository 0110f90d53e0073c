// Package versions tracks the bullet version history of saved experiences.
// Each history is keyed by experience id, persisted independently of the
// draft, and ordered newest-first. Snapshots are immutable: recording only
// prepends, and reverting never removes later versions.
package versions

import (
	"fmt"
	"time"

	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

// ErrVersionNotFound is returned when a history has no version with the
// requested id.
var ErrVersionNotFound = fmt.Errorf("bullet version not found")

// Tracker records and retrieves bullet version history.
type Tracker struct {
	kv *store.Store

	// now is the clock used for version ids; overridable in tests.
	now func() time.Time
}

// NewTracker wraps a key-value store.
func NewTracker(kv *store.Store) *Tracker {
	return &Tracker{kv: kv, now: time.Now}
}

// BeginSession opens the history for an experience at edit-session start.
// If the experience has no history yet, its current bullets are persisted as
// the original snapshot, so reverting to the pre-edit content is a supported
// operation like any other revert.
func (t *Tracker) BeginSession(exp types.SavedExperience) ([]types.BulletVersion, error) {
	history := t.List(exp.ID)
	if len(history) > 0 {
		return history, nil
	}
	v, err := t.record(exp.ID, exp.Bullets, types.VersionOriginal)
	if err != nil {
		return nil, err
	}
	return []types.BulletVersion{v}, nil
}

// Record appends a snapshot of generated bullet content tagged with its
// provenance kind. The new entry is always prepended; history length grows
// by exactly one per call.
func (t *Tracker) Record(experienceID int64, content types.Bullets, kind types.VersionKind) (types.BulletVersion, error) {
	switch kind {
	case types.VersionGenerate, types.VersionRegenerate, types.VersionTailor:
	default:
		return types.BulletVersion{}, fmt.Errorf("invalid version kind %q", kind)
	}
	return t.record(experienceID, content, kind)
}

func (t *Tracker) record(experienceID int64, content types.Bullets, kind types.VersionKind) (types.BulletVersion, error) {
	history := t.List(experienceID)

	now := t.now()
	id := now.UnixMilli()
	for containsID(history, id) {
		id++
	}

	if content == nil {
		content = types.Bullets{}
	}
	v := types.BulletVersion{
		ID:        id,
		Content:   content,
		Timestamp: now.UTC(),
		Kind:      kind,
		Meta:      types.MetaFor(kind),
	}
	history = append([]types.BulletVersion{v}, history...)
	if err := t.kv.Save(store.VersionsKey(experienceID), history); err != nil {
		return types.BulletVersion{}, err
	}
	return v, nil
}

// List returns the history for an experience, newest first. An experience
// with no history yields an empty list.
func (t *Tracker) List(experienceID int64) []types.BulletVersion {
	var history []types.BulletVersion
	t.kv.Load(store.VersionsKey(experienceID), &history)
	return history
}

// Revert returns the content of the named version for the caller to install
// as the live draft. The history itself is untouched: reverting is
// non-destructive and idempotent.
func (t *Tracker) Revert(experienceID, versionID int64) (types.Bullets, error) {
	for _, v := range t.List(experienceID) {
		if v.ID == versionID {
			return v.Content, nil
		}
	}
	return nil, fmt.Errorf("%w: experience %d version %d", ErrVersionNotFound, experienceID, versionID)
}

// Clear removes the history for an experience.
func (t *Tracker) Clear(experienceID int64) error {
	return t.kv.Clear(store.VersionsKey(experienceID))
}

func containsID(history []types.BulletVersion, id int64) bool {
	for _, v := range history {
		if v.ID == id {
			return true
		}
	}
	return false
}
