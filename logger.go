package ringlog

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Logger is the producer-facing front end. It assembles fully self-contained
// records (timestamps, source location, thread identity, tags, message) and
// publishes them to the backend ring without blocking: unless
// Config.MaxLogRate installs a rate limiter (which takes a mutex), the only
// wait-dependent operation on the hot path is the shared lock around the
// global tag set.
//
// A Logger never fails observably. A full ring bumps the drop counter; an
// over-long message is truncated silently.
type Logger struct {
	backend     *Backend
	level       atomic.Int32
	sequence    atomic.Uint64
	dropCount   atomic.Uint64
	rateLimiter *rate.Limiter
	bufferPool  sync.Pool
}

// New creates a logger with its own ring and sink set.
//
// Example:
//
//	logger, err := ringlog.New(ringlog.Config{Level: ringlog.INFO})
//	if err != nil {
//	    panic(err)
//	}
//	logger.AddSink(ringlog.NewConsoleSink())
//	logger.Start()
//	defer logger.Stop()
func New(config Config) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	capacity := config.RingCapacity
	if capacity == 0 {
		capacity = RingSize
	}
	l := &Logger{
		backend: newBackend(capacity),
		bufferPool: sync.Pool{
			New: func() interface{} {
				b := make([]byte, 0, MaxMsgLen)
				return &b
			},
		},
	}
	l.level.Store(int32(config.Level))
	if config.MaxLogRate > 0 {
		l.rateLimiter = rate.NewLimiter(rate.Limit(config.MaxLogRate), config.MaxLogRate)
	}
	return l, nil
}

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide logger, created lazily on first use with
// the zero configuration.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger, _ = New(Config{})
	})
	return defaultLogger
}

// AddSink registers a sink. Sinks receive records in insertion order; the
// list must not change after Start.
func (l *Logger) AddSink(s Sink) { l.backend.AddSink(s) }

// Start spawns the consumer goroutine. Idempotent.
func (l *Logger) Start() { l.backend.Start() }

// Stop joins the consumer, drains the ring to empty and flushes every sink.
// Idempotent, and safe if Start was never called.
func (l *Logger) Stop() { l.backend.Stop() }

// Drain pops and dispatches up to max records, returning the number
// dispatched. Reserved for embedded mode or a stopped backend; see
// Backend.Drain.
func (l *Logger) Drain(max int) int { return l.backend.Drain(max) }

// SetLevel updates the runtime minimum level.
func (l *Logger) SetLevel(level LogLevel) { l.level.Store(int32(level)) }

// Level returns the current runtime minimum level.
func (l *Logger) Level() LogLevel { return LogLevel(l.level.Load()) }

// DropCount returns how many records were rejected by a full ring.
func (l *Logger) DropCount() uint64 { return l.dropCount.Load() }

// ResetDropCount zeroes the drop counter.
func (l *Logger) ResetDropCount() { l.dropCount.Store(0) }

// callerSkip is the fixed frame distance from runtime.Caller inside
// fillLocation up to the user call site. Every exported logging method is
// exactly one frame above logAt.
const callerSkip = 3

// logAt assembles and publishes one record. All exported logging methods
// funnel through here and must sit exactly one stack frame above it so the
// captured source location is the user call site.
func (l *Logger) logAt(level LogLevel, format string, args ...interface{}) {
	if level < ActiveLevel || level >= OFF {
		return
	}
	if level < LogLevel(l.level.Load()) {
		return
	}
	if l.rateLimiter != nil && !l.rateLimiter.Allow() {
		return
	}

	var rec Record
	rec.TimestampNS = monotonicNowNS()
	rec.WallClockNS = wallClockNowNS()
	rec.Level = level
	fillLocation(&rec, callerSkip)
	rec.SequenceID = l.sequence.Add(1) - 1
	Context().fillRecord(&rec)

	bufp := l.bufferPool.Get().(*[]byte)
	b := (*bufp)[:0]
	if len(args) == 0 {
		b = append(b, format...)
	} else {
		b = fmt.Appendf(b, format, args...)
	}
	n := copy(rec.Msg[:MaxMsgLen-1], b)
	rec.MsgLen = uint16(n)
	rec.Msg[n] = 0
	*bufp = b[:0]
	l.bufferPool.Put(bufp)

	if !l.backend.TryPush(&rec) {
		l.dropCount.Add(1)
	}
}

// fillLocation captures the source location skip frames above the caller of
// runtime.Caller. The file path, base name and function names are interned
// strings owned by the runtime; the record borrows them safely.
func fillLocation(rec *Record, skip int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		rec.FilePath, rec.FileName = "unknown", "unknown"
		rec.FuncName, rec.PrettyFunc = "unknown", "unknown"
		return
	}
	rec.FilePath = file
	rec.FileName = file
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		rec.FileName = file[i+1:]
	}
	rec.Line = uint32(line)
	// Column is not recoverable from the Go runtime.

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		rec.FuncName, rec.PrettyFunc = "unknown", "unknown"
		return
	}
	pretty := fn.Name()
	rec.PrettyFunc = pretty
	short := pretty
	if i := strings.LastIndexByte(short, '/'); i >= 0 {
		short = short[i+1:]
	}
	if i := strings.LastIndexByte(short, '.'); i >= 0 {
		short = short[i+1:]
	}
	rec.FuncName = short
}

// Trace logs a message at TRACE level.
func (l *Logger) Trace(v ...interface{}) { l.logAt(TRACE, fmt.Sprint(v...)) }

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(v ...interface{}) { l.logAt(DEBUG, fmt.Sprint(v...)) }

// Info logs a message at INFO level.
func (l *Logger) Info(v ...interface{}) { l.logAt(INFO, fmt.Sprint(v...)) }

// Warn logs a message at WARN level.
func (l *Logger) Warn(v ...interface{}) { l.logAt(WARN, fmt.Sprint(v...)) }

// Error logs a message at ERROR level.
func (l *Logger) Error(v ...interface{}) { l.logAt(ERROR, fmt.Sprint(v...)) }

// Fatal logs a message at FATAL level. The process keeps running; FATAL is
// a severity, not a control-flow primitive.
func (l *Logger) Fatal(v ...interface{}) { l.logAt(FATAL, fmt.Sprint(v...)) }

// Tracef logs a formatted message at TRACE level.
func (l *Logger) Tracef(format string, v ...interface{}) { l.logAt(TRACE, format, v...) }

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(format string, v ...interface{}) { l.logAt(DEBUG, format, v...) }

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(format string, v ...interface{}) { l.logAt(INFO, format, v...) }

// Warnf logs a formatted message at WARN level.
func (l *Logger) Warnf(format string, v ...interface{}) { l.logAt(WARN, format, v...) }

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(format string, v ...interface{}) { l.logAt(ERROR, format, v...) }

// Fatalf logs a formatted message at FATAL level without terminating the
// process.
func (l *Logger) Fatalf(format string, v ...interface{}) { l.logAt(FATAL, format, v...) }

// LogIf logs a formatted message at level only when cond is true.
func (l *Logger) LogIf(cond bool, level LogLevel, format string, v ...interface{}) {
	if !cond {
		return
	}
	l.logAt(level, format, v...)
}

// Counter is the shared call-site counter for LogEveryN. Declare one per
// call site (package scope or long-lived struct field) and pass its
// address; it is shared across every goroutine hitting that site.
type Counter struct {
	n atomic.Uint64
}

// LogEveryN emits the record on the 1st, n+1st, 2n+1st... hit of the
// counter, regardless of which goroutine hits it.
func (l *Logger) LogEveryN(c *Counter, n uint64, level LogLevel, format string, v ...interface{}) {
	if n == 0 {
		n = 1
	}
	if (c.n.Add(1)-1)%n != 0 {
		return
	}
	l.logAt(level, format, v...)
}

// Once is the shared call-site flag for LogOnce.
type Once struct {
	done atomic.Bool
}

// LogOnce emits the record on exactly the first invocation, even when
// several goroutines race for the first hit.
func (l *Logger) LogOnce(o *Once, level LogLevel, format string, v ...interface{}) {
	if o.done.Swap(true) {
		return
	}
	l.logAt(level, format, v...)
}
