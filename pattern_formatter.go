package ringlog

// DefaultPattern is the pattern installed when a sink needs a formatter and
// none was attached.
const DefaultPattern = "[%D %T%e] [%C%L%R] [tid:%t] [%f:%#::%n] %g %m"

// defaultFilePattern is the colorless default used by file sinks.
const defaultFilePattern = "[%D %T%e] [%L] [tid:%t] [%f:%#::%n] %g %m"

type opKind uint8

const (
	opLiteral opKind = iota
	opDate
	opTime
	opMicros
	opLevelFull
	opLevelShort
	opFileName
	opFilePath
	opFuncName
	opPrettyFunc
	opLine
	opThreadID
	opProcessID
	opThreadName
	opSequenceID
	opTags
	opMessage
	opColorStart
	opColorReset
)

type patternOp struct {
	kind    opKind
	literal string
}

// PatternFormatter renders records according to a %-token pattern compiled
// once at construction.
//
// Tokens:
//
//	%D  date YYYY-MM-DD          %T  time HH:MM:SS
//	%e  .uuuuuu fractional secs  %L / %l  full / short level
//	%f / %F  file basename / path
//	%n / %N  function / pretty function
//	%#  line number
//	%t / %P / %k  thread id / process id / thread name
//	%q  sequence id
//	%g  tags as [k1=v1|k2=v2]; empty when no tags
//	%m  message
//	%C / %R  level color start / reset; empty when color is disabled
//	%%  literal percent
//
// Any unknown %x sequence renders literally.
type PatternFormatter struct {
	pattern     string
	enableColor bool
	ops         []patternOp
}

// NewPatternFormatter compiles pattern. Color tokens expand to ANSI
// sequences only when enableColor is true.
func NewPatternFormatter(pattern string, enableColor bool) *PatternFormatter {
	f := &PatternFormatter{pattern: pattern, enableColor: enableColor}
	f.compile()
	return f
}

var tokenKinds = map[byte]opKind{
	'D': opDate,
	'T': opTime,
	'e': opMicros,
	'L': opLevelFull,
	'l': opLevelShort,
	'f': opFileName,
	'F': opFilePath,
	'n': opFuncName,
	'N': opPrettyFunc,
	'#': opLine,
	't': opThreadID,
	'P': opProcessID,
	'k': opThreadName,
	'q': opSequenceID,
	'g': opTags,
	'm': opMessage,
	'C': opColorStart,
	'R': opColorReset,
}

func (f *PatternFormatter) compile() {
	f.ops = f.ops[:0]
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			f.ops = append(f.ops, patternOp{kind: opLiteral, literal: string(literal)})
			literal = literal[:0]
		}
	}

	for i := 0; i < len(f.pattern); i++ {
		ch := f.pattern[i]
		if ch != '%' {
			literal = append(literal, ch)
			continue
		}
		if i+1 >= len(f.pattern) {
			literal = append(literal, '%')
			continue
		}
		i++
		next := f.pattern[i]
		if next == '%' {
			literal = append(literal, '%')
			continue
		}
		if kind, ok := tokenKinds[next]; ok {
			flush()
			f.ops = append(f.ops, patternOp{kind: kind})
		} else {
			literal = append(literal, '%', next)
		}
	}
	flush()
}

// Format renders rec into buf and returns the number of bytes written.
func (f *PatternFormatter) Format(rec *Record, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	w := boundedWriter{buf: buf}
	var tmp [32]byte

	for i := range f.ops {
		op := &f.ops[i]
		switch op.kind {
		case opLiteral:
			w.writeString(op.literal)
		case opDate:
			w.writeBytes(appendDate(tmp[:0], rec.WallClockNS))
		case opTime:
			w.writeBytes(appendClock(tmp[:0], rec.WallClockNS))
		case opMicros:
			w.writeBytes(appendMicros(tmp[:0], rec.WallClockNS))
		case opLevelFull:
			w.writeString(rec.Level.String())
		case opLevelShort:
			w.writeByte(rec.Level.Short())
		case opFileName:
			w.writeString(rec.FileName)
		case opFilePath:
			w.writeString(rec.FilePath)
		case opFuncName:
			w.writeString(rec.FuncName)
		case opPrettyFunc:
			w.writeString(rec.PrettyFunc)
		case opLine:
			w.writeUint(uint64(rec.Line))
		case opThreadID:
			w.writeUint(uint64(rec.ThreadID))
		case opProcessID:
			w.writeUint(uint64(rec.ProcessID))
		case opThreadName:
			w.writeBytes(cstr(rec.ThreadName[:]))
		case opSequenceID:
			w.writeUint(rec.SequenceID)
		case opTags:
			if rec.TagCount == 0 {
				break
			}
			w.writeByte('[')
			for t := 0; t < int(rec.TagCount); t++ {
				if t > 0 {
					w.writeByte('|')
				}
				w.writeBytes(cstr(rec.Tags[t].Key[:]))
				w.writeByte('=')
				w.writeBytes(cstr(rec.Tags[t].Value[:]))
			}
			w.writeByte(']')
		case opMessage:
			w.writeBytes(rec.Msg[:rec.MsgLen])
		case opColorStart:
			if f.enableColor {
				w.writeString(rec.Level.colorCode())
			}
		case opColorReset:
			if f.enableColor {
				w.writeString(colorReset)
			}
		}
	}
	return w.n
}
