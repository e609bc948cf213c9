package ringlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySinkRetainsInOrder(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	for i := 0; i < 5; i++ {
		rec := newTestRecord(INFO, fmt.Sprintf("msg-%d", i))
		sink.Write(&rec)
	}

	require.Equal(t, 5, sink.Size())
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), sink.At(i).Message())
	}
}

func TestMemorySinkOverwritesOldest(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(4)
	for i := 0; i < 10; i++ {
		rec := newTestRecord(INFO, fmt.Sprintf("msg-%d", i))
		sink.Write(&rec)
	}

	require.Equal(t, 4, sink.Size())
	// The 4 most recent records, oldest first.
	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprintf("msg-%d", 6+i), sink.At(i).Message())
	}
}

func TestMemorySinkExactlyFull(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(4)
	for i := 0; i < 4; i++ {
		rec := newTestRecord(INFO, fmt.Sprintf("msg-%d", i))
		sink.Write(&rec)
	}
	require.Equal(t, 4, sink.Size())
	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), sink.At(i).Message())
	}
}

func TestMemorySinkLevelFilter(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	sink.SetLevel(ERROR)
	rec := newTestRecord(INFO, "filtered")
	sink.Write(&rec)
	assert.Equal(t, 0, sink.Size())
}

func TestMemorySinkDumpToFile(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	sink.SetFormatter(NewPatternFormatter("%m", false))
	for i := 0; i < 3; i++ {
		rec := newTestRecord(INFO, fmt.Sprintf("crash-%d", i))
		sink.Write(&rec)
	}

	path := filepath.Join(t.TempDir(), "dump.log")
	require.True(t, sink.DumpToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "crash-0\ncrash-1\ncrash-2\n", string(data))
}

func TestMemorySinkDumpEmpty(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	path := filepath.Join(t.TempDir(), "empty.log")
	assert.True(t, sink.DumpToFile(path), "an empty dump still reports success")
	assert.FileExists(t, path)
}

func TestMemorySinkDumpOpenFailure(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	rec := newTestRecord(INFO, "x")
	sink.Write(&rec)
	assert.False(t, sink.DumpToFile(t.TempDir()), "a directory path cannot be opened")
}

func TestMemorySinkDumpDefaultFormatter(t *testing.T) {
	t.Parallel()

	sink := NewMemoryRingSink(8)
	rec := newTestRecord(WARN, "plain dump")
	sink.Write(&rec)

	path := filepath.Join(t.TempDir(), "dump.log")
	require.True(t, sink.DumpToFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN]")
	assert.Contains(t, string(data), "plain dump")
	assert.False(t, strings.Contains(string(data), "\x1b["), "the default dump format has no color")
}
