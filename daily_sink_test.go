package ringlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallNSForDay(t time.Time) uint64 {
	return uint64(t.UnixNano())
}

func TestDailySinkWritesToDayFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewDailyFileSink(dir, "node", 0, true)
	sink.SetFormatter(NewPatternFormatter("%m", false))
	defer sink.Close()

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := newTestRecord(INFO, "on march first")
	rec.WallClockNS = wallNSForDay(day)
	sink.Write(&rec)
	sink.Flush()

	data, err := os.ReadFile(filepath.Join(dir, "node_2024-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "on march first\n", string(data))
}

// TestDailySinkRollover synthesizes a record on the next calendar day and
// expects the sink to switch files before writing it.
func TestDailySinkRollover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewDailyFileSink(dir, "node", 0, true)
	sink.SetFormatter(NewPatternFormatter("%m", false))
	defer sink.Close()

	dayD := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	rec := newTestRecord(INFO, "last of day D")
	rec.WallClockNS = wallNSForDay(dayD)
	sink.Write(&rec)

	dayNext := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	rec = newTestRecord(INFO, "first of day D+1")
	rec.WallClockNS = wallNSForDay(dayNext)
	sink.Write(&rec)
	sink.Flush()

	first, err := os.ReadFile(filepath.Join(dir, "node_2024-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "last of day D\n", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "node_2024-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "first of day D+1\n", string(second))
}

func TestDailySinkYearBoundaryRollover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewDailyFileSink(dir, "node", 0, true)
	sink.SetFormatter(NewPatternFormatter("%m", false))
	defer sink.Close()

	rec := newTestRecord(INFO, "new year's eve")
	rec.WallClockNS = wallNSForDay(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	sink.Write(&rec)

	rec = newTestRecord(INFO, "new year")
	rec.WallClockNS = wallNSForDay(time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC))
	sink.Write(&rec)
	sink.Flush()

	assert.FileExists(t, filepath.Join(dir, "node_2024-12-31.log"))
	assert.FileExists(t, filepath.Join(dir, "node_2025-01-01.log"))
}

func TestDailySinkCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	sink := NewDailyFileSink(dir, "node", 0, true)
	defer sink.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDailySinkRetentionCleanup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stale := filepath.Join(dir, "node_2020-01-01.log")
	require.NoError(t, os.WriteFile(stale, []byte("old\n"), 0o644))
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	unrelated := filepath.Join(dir, "other_2020-01-01.log")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep\n"), 0o644))
	require.NoError(t, os.Chtimes(unrelated, old, old))

	sink := NewDailyFileSink(dir, "node", 7, true)
	defer sink.Close()

	assert.NoFileExists(t, stale, "files older than the retention are unlinked")
	assert.FileExists(t, unrelated, "cleanup only touches this sink's prefix")
}

func TestDailySinkDayKeyMonotonic(t *testing.T) {
	t.Parallel()

	sink := &DailyFileSink{useUTC: true}
	prev := sink.dayKey(wallNSForDay(time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)))
	for _, ts := range []time.Time{
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		key := sink.dayKey(wallNSForDay(ts))
		assert.Greater(t, key, prev, "day key must increase across %v", ts)
		prev = key
	}
}
