package ringlog

import (
	"context"
	"log/slog"
	"time"
)

// RecordFunc receives a record synchronously on the consumer goroutine.
// The callback must not retain rec past the call; copy the record if it
// needs to outlive the callback.
type RecordFunc func(rec *Record)

// CallbackSink forwards each record verbatim to a user function.
type CallbackSink struct {
	sinkCore
	callback RecordFunc
}

// NewCallbackSink creates a sink invoking cb for every passing record.
func NewCallbackSink(cb RecordFunc) *CallbackSink {
	return &CallbackSink{callback: cb}
}

// Write invokes the callback when the record passes the sink's level gate.
func (s *CallbackSink) Write(rec *Record) {
	if !s.ShouldLog(rec.Level) {
		return
	}
	if s.callback != nil {
		s.callback(rec)
	}
}

// Flush is a no-op.
func (s *CallbackSink) Flush() {}

// SlogSink bridges records into a log/slog handler, carrying the message,
// source location, sequence id and tags across. It is the escape hatch for
// applications that aggregate through an external logging framework.
type SlogSink struct {
	sinkCore
	handler slog.Handler
}

// NewSlogSink creates a sink forwarding to h.
func NewSlogSink(h slog.Handler) *SlogSink {
	return &SlogSink{handler: h}
}

func mapSlogLevel(level LogLevel) slog.Level {
	switch level {
	case TRACE, DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case WARN:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Write translates the record into a slog.Record and hands it to the
// handler. Handler errors are swallowed; sink failures never propagate.
func (s *SlogSink) Write(rec *Record) {
	if !s.ShouldLog(rec.Level) {
		return
	}
	if s.handler == nil {
		return
	}
	r := slog.NewRecord(time.Unix(0, int64(rec.WallClockNS)), mapSlogLevel(rec.Level), rec.Message(), 0)
	r.AddAttrs(
		slog.String("file", rec.FileName),
		slog.Int("line", int(rec.Line)),
		slog.String("func", rec.FuncName),
		slog.Uint64("seq", rec.SequenceID),
	)
	for i := 0; i < int(rec.TagCount); i++ {
		tag := &rec.Tags[i]
		r.AddAttrs(slog.String(tag.KeyString(), tag.ValueString()))
	}
	_ = s.handler.Handle(context.Background(), r)
}

// Flush is a no-op; slog handlers manage their own buffering.
func (s *SlogSink) Flush() {}
