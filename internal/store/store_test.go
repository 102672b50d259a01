package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := New(dir, nil)
	require.NoError(t, err)
	return st, dir
}

func TestDefaultsOnMissingFiles(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	settings, err := st.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Medium", "Low"}, settings.EnergyCategories)
	assert.True(t, settings.AutoBackup)

	doc, err := st.Quests(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Daily)
	assert.Empty(t, doc.Weekly)
	assert.Empty(t, doc.Monthly)

	logs, err := st.Logs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	reminders, err := st.Reminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, reminders)

	// Reads never create files; only saves do.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	doc, err := st.Quests(ctx)
	require.NoError(t, err)
	doc.Daily = append(doc.Daily, &Quest{ID: 1, Title: "Meditate", Created: "2026-03-10"})
	doc.Weekly = append(doc.Weekly, &Quest{ID: 2, Title: "Review", IsProgressive: true, ProgressTarget: 4})
	require.NoError(t, st.SaveQuests(ctx, doc))

	logs := Logs{"2026-03-10": {QuestsTotal: 3, QuestsCompleted: 1}}
	require.NoError(t, st.SaveLogs(ctx, logs))

	// A fresh store over the same directory reads back identical state.
	st2, err := New(dir, nil)
	require.NoError(t, err)
	doc2, err := st2.Quests(ctx)
	require.NoError(t, err)
	require.Len(t, doc2.Daily, 1)
	assert.Equal(t, "Meditate", doc2.Daily[0].Title)
	require.Len(t, doc2.Weekly, 1)
	assert.Equal(t, 4, doc2.Weekly[0].ProgressTarget)

	logs2, err := st2.Logs(ctx)
	require.NoError(t, err)
	require.Contains(t, logs2, "2026-03-10")
	assert.Equal(t, 3, logs2["2026-03-10"].QuestsTotal)
}

func TestWrittenFilesAreValidJSON(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	settings, err := st.Settings(ctx)
	require.NoError(t, err)
	require.NoError(t, st.SaveSettings(ctx, settings))

	raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "energy_categories")

	// No temp files left behind after a successful write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestGenerateIDMonotonic(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	seen := make(map[int64]bool, 1000)
	var prev int64
	for i := 0; i < 1000; i++ {
		id, err := st.GenerateID(ctx)
		require.NoError(t, err)
		require.Greater(t, id, prev, "ids must strictly increase")
		require.False(t, seen[id], "id %d reused", id)
		seen[id] = true
		prev = id
	}

	// The counter is persisted with each id, so a rebuilt store continues
	// past it instead of reusing ids.
	st2, err := New(dir, nil)
	require.NoError(t, err)
	id, err := st2.GenerateID(ctx)
	require.NoError(t, err)
	assert.Greater(t, id, prev)
}

func TestInvalidateRereadsDisk(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	doc, err := st.Quests(ctx)
	require.NoError(t, err)
	doc.Daily = append(doc.Daily, &Quest{ID: 1, Title: "Original"})
	require.NoError(t, st.SaveQuests(ctx, doc))

	// Another writer replaces the file out from under the cache.
	other, err := New(dir, nil)
	require.NoError(t, err)
	doc2, err := other.Quests(ctx)
	require.NoError(t, err)
	doc2.Daily[0].Title = "Replaced"
	require.NoError(t, other.SaveQuests(ctx, doc2))

	cached, err := st.Quests(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Original", cached.Daily[0].Title)

	st.Invalidate(DomainQuests)
	fresh, err := st.Quests(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Replaced", fresh.Daily[0].Title)
}

func TestFlushAllWritesEveryLoadedDomain(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	_, err := st.Settings(ctx)
	require.NoError(t, err)
	_, err = st.Quests(ctx)
	require.NoError(t, err)

	require.NoError(t, st.FlushAll(ctx))

	for _, name := range []string{"settings.json", "quests.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should exist after flush", name)
	}
	// Never-loaded domains are not flushed.
	_, err = os.Stat(filepath.Join(dir, "reminders.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFlushFailureKeepsCacheValue(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	settings, err := st.Settings(ctx)
	require.NoError(t, err)

	// A directory squatting on the final path makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "settings.json"), 0o755))

	settings.PersistentNotes = "not lost"
	require.Error(t, st.SaveSettings(ctx, settings))

	// The in-memory update survives the failed flush.
	again, err := st.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "not lost", again.PersistentNotes)

	// No temp file lingers after the failed rename.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestCorruptFileSurfacesError(t *testing.T) {
	st, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "quests.json"), []byte("{not json"), 0o644))
	_, err := st.Quests(ctx)
	assert.Error(t, err)
}

func TestDefaultDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIFETRACKER_DATA", dir)
	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
