package storage

import (
	"fmt"
	"medreminder/internal/models"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T, ttl time.Duration) (*HistoryArchive, string) {
	t.Helper()
	dir := t.TempDir()
	conf := &structures.Config{
		Storage: structures.StorageConfig{Dir: dir},
		History: structures.HistoryConfig{ArchiveTTL: ttl},
	}
	a, err := NewHistoryArchive(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	ha := a.(*HistoryArchive)
	t.Cleanup(ha.Close)
	return ha, filepath.Join(dir, "archive")
}

func entryAt(id string, at time.Time) models.HistoryEntry {
	return models.HistoryEntry{ID: id, MedID: "m1", Name: "Ibuprofen", Action: models.ActionTaken, Time: at}
}

func TestHistoryArchive_FlushWritesMonthFiles(t *testing.T) {
	ha, dir := newTestArchive(t, 0)

	ha.Evict([]models.HistoryEntry{
		entryAt("h3", time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)),
		entryAt("h2", time.Date(2026, 9, 30, 8, 0, 0, 0, time.UTC)),
		entryAt("h1", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, ha.Flush())

	assert.FileExists(t, filepath.Join(dir, "2026-10.cold.zst"))
	assert.FileExists(t, filepath.Join(dir, "2026-09.cold.zst"))

	months, err := ha.Months()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10", "2026-09"}, months)

	sept, err := ha.Read("2026-09")
	require.NoError(t, err)
	require.Len(t, sept, 2)
	assert.Equal(t, "h2", sept[0].ID)
	assert.Equal(t, "h1", sept[1].ID)
}

func TestHistoryArchive_FlushMergesAndDedups(t *testing.T) {
	ha, _ := newTestArchive(t, 0)

	first := entryAt("h1", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))
	ha.Evict([]models.HistoryEntry{first})
	require.NoError(t, ha.Flush())

	ha.Evict([]models.HistoryEntry{first, entryAt("h2", time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC))})
	require.NoError(t, ha.Flush())

	entries, err := ha.Read("2026-09")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "h2", entries[0].ID)
}

func TestHistoryArchive_ReadIncludesPending(t *testing.T) {
	ha, _ := newTestArchive(t, 0)

	ha.Evict([]models.HistoryEntry{entryAt("h1", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))})

	entries, err := ha.Read("2026-09")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	months, err := ha.Months()
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestHistoryArchive_ReadInvalidMonth(t *testing.T) {
	ha, _ := newTestArchive(t, 0)

	for _, month := range []string{"", "2026-13", "../../etc", "2026/09"} {
		_, err := ha.Read(month)
		assert.ErrorIs(t, err, ErrInvalidMonth, month)
	}
}

func TestHistoryArchive_ReadUnknownMonthIsEmpty(t *testing.T) {
	ha, _ := newTestArchive(t, 0)

	entries, err := ha.Read("2020-01")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryArchive_TTLDropsOldMonths(t *testing.T) {
	ha, dir := newTestArchive(t, 30*24*time.Hour)
	ha.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	ha.Evict([]models.HistoryEntry{
		entryAt("old", time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC)),
		entryAt("recent", time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, ha.Flush())

	_, err := os.Stat(filepath.Join(dir, "2026-07.cold.zst"))
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(dir, "2026-09.cold.zst"))
}

func TestHistoryArchive_CorruptFileIsSkipped(t *testing.T) {
	ha, dir := newTestArchive(t, 0)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026-09.cold.zst"), []byte("junk"), 0o644))

	entries, err := ha.Read("2026-09")
	require.NoError(t, err)
	assert.Empty(t, entries)

	ha.Evict([]models.HistoryEntry{entryAt("h1", time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))})
	require.NoError(t, ha.Flush())
	entries, err = ha.Read("2026-09")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistoryArchive_FlushMovesCorruptFileAside(t *testing.T) {
	ha, dir := newTestArchive(t, 0)
	ha.now = func() time.Time { return time.Unix(1700000000, 0) }
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "2026-09.cold.zst")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	ha.Evict([]models.HistoryEntry{entryAt("h1", time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC))})
	require.NoError(t, ha.Flush())

	kept, err := os.ReadFile(path + ".corrupt-1700000000")
	require.NoError(t, err)
	assert.Equal(t, []byte("junk"), kept)

	months, err := ha.Months()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09"}, months)
}

func TestHistoryArchive_FlushKeepsPendingWhenQuarantineFails(t *testing.T) {
	ha, dir := newTestArchive(t, 0)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "2026-09.cold.zst")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))
	ha.now = func() time.Time { return time.Unix(1700000000, 0) }
	// a directory in the way makes the rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(path+".corrupt-1700000000", "x"), 0o755))

	ha.Evict([]models.HistoryEntry{entryAt("h1", time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC))})
	require.Error(t, ha.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("junk"), data)
	assert.Len(t, ha.pending["2026-09"], 1)
}

func TestMergeNewestFirst(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var a, b []models.HistoryEntry
	for i := 0; i < 3; i++ {
		a = append(a, entryAt(fmt.Sprintf("a%d", i), base.Add(time.Duration(i)*time.Hour)))
	}
	b = append(b, a[0], entryAt("b0", base.Add(90*time.Minute)))

	out := mergeNewestFirst(a, b)
	ids := make([]string, len(out))
	for i, e := range out {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"a2", "b0", "a1", "a0"}, ids)
}
