package ringlog

// Formatter renders a record into a caller-provided buffer and returns the
// number of bytes written. Output exceeding len(buf) is silently truncated.
// A Formatter must be a pure function of the record: no retained pointers,
// no I/O.
type Formatter interface {
	Format(rec *Record, buf []byte) int
}

// Sink receives fully assembled records on the consumer goroutine and
// performs I/O or in-memory retention. After Start only the consumer
// touches a sink, so implementations need no internal synchronization.
type Sink interface {
	Write(rec *Record)
	Flush()
	SetFormatter(f Formatter)
	SetLevel(level LogLevel)
	Level() LogLevel
	ShouldLog(level LogLevel) bool
}

// sinkBufSize is the scratch capacity each sink owns for formatted output.
const sinkBufSize = 2048

// sinkCore carries the state every sink shares: the minimum level, the
// attached formatter and the scratch buffer. Embedded by each sink variant.
type sinkCore struct {
	formatter Formatter
	minLevel  LogLevel
	buf       [sinkBufSize]byte
}

// SetFormatter attaches the formatter this sink renders with.
func (c *sinkCore) SetFormatter(f Formatter) { c.formatter = f }

// SetLevel sets this sink's minimum level, independent of the logger level.
func (c *sinkCore) SetLevel(level LogLevel) { c.minLevel = level }

// Level returns this sink's minimum level. The default is TRACE.
func (c *sinkCore) Level() LogLevel { return c.minLevel }

// ShouldLog reports whether a record at level passes this sink's filter.
func (c *sinkCore) ShouldLog(level LogLevel) bool { return level >= c.minLevel }

// format renders rec into the scratch buffer. The caller installs a default
// formatter first if none is attached.
func (c *sinkCore) format(rec *Record) int {
	return c.formatter.Format(rec, c.buf[:])
}

var newlineByte = []byte{'\n'}
