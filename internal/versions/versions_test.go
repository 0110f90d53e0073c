package versions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	kv, err := store.New(t.TempDir())
	require.NoError(t, err)
	return NewTracker(kv)
}

func TestRecord_PrependsNewestFirst(t *testing.T) {
	tr := newTestTracker(t)

	first, err := tr.Record(1, types.Bullets{"• v1"}, types.VersionGenerate)
	require.NoError(t, err)
	second, err := tr.Record(1, types.Bullets{"• v2"}, types.VersionRegenerate)
	require.NoError(t, err)

	history := tr.List(1)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "new entry is always at index 0")
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, types.VersionRegenerate, history[0].Kind)
	assert.Equal(t, "Regenerated", history[0].Meta.Label)
}

func TestRecord_MonotonicLength(t *testing.T) {
	tr := newTestTracker(t)

	for i := 1; i <= 5; i++ {
		_, err := tr.Record(7, types.Bullets{"• x"}, types.VersionGenerate)
		require.NoError(t, err)
		assert.Len(t, tr.List(7), i, "history length grows by exactly one per call")
	}
}

func TestRecord_RejectsInvalidKind(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.Record(1, types.Bullets{"• x"}, types.VersionKind("bogus"))
	assert.Error(t, err)

	// The original kind is reserved for BeginSession.
	_, err = tr.Record(1, types.Bullets{"• x"}, types.VersionOriginal)
	assert.Error(t, err)
}

func TestRecord_SameMillisecondIDsStayUnique(t *testing.T) {
	tr := newTestTracker(t)
	fixed := time.UnixMilli(1700000000000)
	tr.now = func() time.Time { return fixed }

	a, err := tr.Record(1, types.Bullets{"• a"}, types.VersionGenerate)
	require.NoError(t, err)
	b, err := tr.Record(1, types.Bullets{"• b"}, types.VersionGenerate)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRevert_IdempotentAndNonDestructive(t *testing.T) {
	tr := newTestTracker(t)

	v1, err := tr.Record(1, types.Bullets{"• old"}, types.VersionGenerate)
	require.NoError(t, err)
	_, err = tr.Record(1, types.Bullets{"• new"}, types.VersionRegenerate)
	require.NoError(t, err)

	got1, err := tr.Revert(1, v1.ID)
	require.NoError(t, err)
	got2, err := tr.Revert(1, v1.ID)
	require.NoError(t, err)

	assert.Equal(t, got1, got2, "reverting twice yields the same content")
	assert.Equal(t, types.Bullets{"• old"}, got1)
	assert.Len(t, tr.List(1), 2, "revert does not alter history length")
}

func TestRevert_UnknownVersion(t *testing.T) {
	tr := newTestTracker(t)
	_, err := tr.Revert(1, 12345)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestBeginSession_PersistsOriginalOnce(t *testing.T) {
	tr := newTestTracker(t)
	exp := types.SavedExperience{ID: 9, Bullets: types.Bullets{"• as saved"}}

	history, err := tr.BeginSession(exp)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, types.VersionOriginal, history[0].Kind)
	assert.Equal(t, "Original Version", history[0].Meta.Label)

	// A second session must not synthesize another original.
	again, err := tr.BeginSession(exp)
	require.NoError(t, err)
	assert.Len(t, again, 1)

	// Reverting to original is first-class.
	content, err := tr.Revert(9, history[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.Bullets{"• as saved"}, content)
}

func TestHistories_AreKeyedPerExperience(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.Record(1, types.Bullets{"• one"}, types.VersionGenerate)
	require.NoError(t, err)
	_, err = tr.Record(2, types.Bullets{"• two"}, types.VersionGenerate)
	require.NoError(t, err)

	assert.Len(t, tr.List(1), 1)
	assert.Len(t, tr.List(2), 1)
	require.NoError(t, tr.Clear(1))
	assert.Empty(t, tr.List(1))
	assert.Len(t, tr.List(2), 1)
}
