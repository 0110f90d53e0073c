package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtri-thrive/toolkit/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := New(t.TempDir())
	require.NoError(t, err)
	return kv
}

func TestStore_SaveLoadClear(t *testing.T) {
	kv := newTestStore(t)

	require.NoError(t, kv.Save("starBuilderState", map[string]int{"currentStep": 2}))

	var loaded map[string]int
	require.True(t, kv.Load("starBuilderState", &loaded))
	assert.Equal(t, 2, loaded["currentStep"])

	require.NoError(t, kv.Clear("starBuilderState"))
	var after map[string]int
	assert.False(t, kv.Load("starBuilderState", &after))

	// Clearing again is a no-op.
	require.NoError(t, kv.Clear("starBuilderState"))
}

func TestStore_MissingKey(t *testing.T) {
	kv := newTestStore(t)

	var dst []string
	assert.False(t, kv.Load("nope", &dst))
	assert.Nil(t, dst)
}

func TestStore_CorruptDataFallsBackToDefault(t *testing.T) {
	kv := newTestStore(t)

	// Write garbage directly under the key's backing file.
	require.NoError(t, os.WriteFile(filepath.Join(kv.Dir(), "starExperiences.json"), []byte("{not json"), 0o644))

	var dst []types.SavedExperience
	assert.False(t, kv.Load("starExperiences", &dst))
	assert.Nil(t, dst)
}

func TestStore_KeyCannotEscapeDirectory(t *testing.T) {
	kv := newTestStore(t)
	require.NoError(t, kv.Save("../escape", "x"))

	entries, err := os.ReadDir(kv.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExperienceStore_CreateAssignsIDAndGradient(t *testing.T) {
	es := NewExperienceStore(newTestStore(t))

	saved, err := es.Save(types.SavedExperience{Title: "Engineer", Company: "Acme", Type: types.TypeWork})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.NotEmpty(t, saved.Gradient)

	list := es.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Engineer", list[0].Title)
}

func TestExperienceStore_UpdatePreservesIDAndGradient(t *testing.T) {
	es := NewExperienceStore(newTestStore(t))

	created, err := es.Save(types.SavedExperience{Title: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	edited := created
	edited.Title = "Senior Engineer"
	edited.Gradient = "should be ignored"
	updated, err := es.Save(edited)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Gradient, updated.Gradient)

	reloaded, err := es.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", reloaded.Title)
	assert.Equal(t, created.Gradient, reloaded.Gradient)
}

func TestExperienceStore_UpdateUnknownIDFails(t *testing.T) {
	es := NewExperienceStore(newTestStore(t))

	_, err := es.Save(types.SavedExperience{ID: 42, Title: "ghost"})
	assert.ErrorIs(t, err, ErrExperienceNotFound)
}

func TestExperienceStore_Delete(t *testing.T) {
	es := NewExperienceStore(newTestStore(t))

	a, err := es.Save(types.SavedExperience{Title: "A"})
	require.NoError(t, err)
	b, err := es.Save(types.SavedExperience{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, es.Delete(a.ID))
	list := es.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	// Unknown id is a no-op.
	require.NoError(t, es.Delete(9999))
	assert.Len(t, es.List(), 1)
}

func TestExperienceStore_SameMillisecondIDsStayUnique(t *testing.T) {
	es := NewExperienceStore(newTestStore(t))
	fixed := time.UnixMilli(1700000000000)
	es.now = func() time.Time { return fixed }

	a, err := es.Save(types.SavedExperience{Title: "A"})
	require.NoError(t, err)
	b, err := es.Save(types.SavedExperience{Title: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAutosaver_CoalescesAndFlushes(t *testing.T) {
	kv := newTestStore(t)
	as := NewAutosaver(kv, "starBuilderState", 50*time.Millisecond)
	defer as.Stop()

	as.Mark(map[string]int{"currentStep": 1})
	as.Mark(map[string]int{"currentStep": 2})
	assert.True(t, as.Dirty())

	// Nothing written before the debounce window elapses.
	var premature map[string]int
	assert.False(t, kv.Load("starBuilderState", &premature))

	require.NoError(t, as.Flush())
	assert.False(t, as.Dirty())

	var loaded map[string]int
	require.True(t, kv.Load("starBuilderState", &loaded))
	assert.Equal(t, 2, loaded["currentStep"], "last marked state wins")
}

func TestAutosaver_TimerFlush(t *testing.T) {
	kv := newTestStore(t)
	as := NewAutosaver(kv, "starBuilderState", 10*time.Millisecond)
	defer as.Stop()

	as.Mark(map[string]int{"currentStep": 3})

	require.Eventually(t, func() bool {
		var loaded map[string]int
		return kv.Load("starBuilderState", &loaded) && loaded["currentStep"] == 3
	}, time.Second, 5*time.Millisecond)
	assert.False(t, as.Dirty())
}

func TestAutosaver_StopDiscardsPending(t *testing.T) {
	kv := newTestStore(t)
	as := NewAutosaver(kv, "starBuilderState", 10*time.Millisecond)

	as.Mark(map[string]int{"currentStep": 1})
	as.Stop()
	require.NoError(t, as.Flush())

	var loaded map[string]int
	assert.False(t, kv.Load("starBuilderState", &loaded))
}

func TestGradientFor_Deterministic(t *testing.T) {
	assert.Equal(t, GradientFor(100), GradientFor(100))
	assert.Contains(t, GradientFor(100), "linear-gradient(135deg")
}
