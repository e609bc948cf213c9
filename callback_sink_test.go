package ringlog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackSinkForwardsRecord(t *testing.T) {
	t.Parallel()

	var got []string
	sink := NewCallbackSink(func(rec *Record) {
		got = append(got, rec.Message())
	})

	rec := newTestRecord(INFO, "forwarded")
	sink.Write(&rec)
	sink.Flush()

	require.Len(t, got, 1)
	assert.Equal(t, "forwarded", got[0])
}

func TestCallbackSinkLevelFilter(t *testing.T) {
	t.Parallel()

	calls := 0
	sink := NewCallbackSink(func(rec *Record) { calls++ })
	sink.SetLevel(ERROR)

	rec := newTestRecord(INFO, "filtered")
	sink.Write(&rec)
	assert.Equal(t, 0, calls)

	rec = newTestRecord(FATAL, "passes")
	sink.Write(&rec)
	assert.Equal(t, 1, calls)
}

func TestCallbackSinkNilCallback(t *testing.T) {
	t.Parallel()

	sink := NewCallbackSink(nil)
	rec := newTestRecord(INFO, "no-op")
	assert.NotPanics(t, func() { sink.Write(&rec) })
}

func TestSlogSinkBridgesRecord(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	sink := NewSlogSink(handler)

	rec := newTestRecord(WARN, "bridged out")
	rec.Tags[0] = makeTag("env", "dev")
	rec.TagCount = 1
	sink.Write(&rec)
	sink.Flush()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "WARN", decoded["level"])
	assert.Equal(t, "bridged out", decoded["msg"])
	assert.Equal(t, "planner.go", decoded["file"])
	assert.Equal(t, float64(42), decoded["line"])
	assert.Equal(t, "replan", decoded["func"])
	assert.Equal(t, float64(31), decoded["seq"])
	assert.Equal(t, "dev", decoded["env"])
}

func TestSlogSinkLevelMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  slog.Level
	}{
		{TRACE, slog.LevelDebug},
		{DEBUG, slog.LevelDebug},
		{INFO, slog.LevelInfo},
		{WARN, slog.LevelWarn},
		{ERROR, slog.LevelError},
		{FATAL, slog.LevelError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapSlogLevel(tt.level), tt.level.String())
	}
}

func TestSlogSinkNilHandler(t *testing.T) {
	t.Parallel()

	sink := NewSlogSink(nil)
	rec := newTestRecord(INFO, "no-op")
	assert.NotPanics(t, func() { sink.Write(&rec) })
}
