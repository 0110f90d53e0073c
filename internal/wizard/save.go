package wizard

import (
	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

// Save finalizes the draft into the persisted experience list: a new draft
// becomes a new entry with a fresh id and gradient, an edit session updates
// its entry in place. On success the transient draft storage is cleared.
func (c *Controller) Save() (types.SavedExperience, error) {
	if c.experiences == nil {
		return types.SavedExperience{}, ErrNotEditing
	}
	if c.draft.IsGenerating {
		return types.SavedExperience{}, ErrGenerationInFlight
	}

	exp := types.FromDraft(c.draft)
	exp.ID = c.editingID
	saved, err := c.experiences.Save(exp)
	if err != nil {
		return types.SavedExperience{}, err
	}
	c.editingID = saved.ID

	c.autosave.Stop()
	if err := c.kv.Clear(store.KeyBuilderState); err != nil {
		return saved, err
	}
	if err := c.kv.Clear(store.KeyBuilderData); err != nil {
		return saved, err
	}
	return saved, nil
}

// RevertTo replaces the draft's bullets with a historical version's content.
// The history itself is untouched; saving afterwards persists the reverted
// bullets. Only available in an edit session.
func (c *Controller) RevertTo(versionID int64) error {
	if c.editingID == 0 || c.tracker == nil {
		return ErrNotEditing
	}
	content, err := c.tracker.Revert(c.editingID, versionID)
	if err != nil {
		return err
	}
	c.draft.GeneratedBullets = content
	c.mark()
	return nil
}

// Versions returns the edit session's bullet history, newest first. A new
// draft has no history.
func (c *Controller) Versions() []types.BulletVersion {
	if c.editingID == 0 || c.tracker == nil {
		return nil
	}
	return c.tracker.List(c.editingID)
}
