package ringlog

// JSONFormatter renders one JSON object per record with a fixed key order:
// ts, level, file, line, func, tid, pid, thread, seq, tags, msg. String
// values are escaped per the boundedWriter rules; ts carries the same
// "YYYY-MM-DD HH:MM:SS.uuuuuu" form the pattern formatter's %D %T%e yields.
// Pretty mode inserts newlines and two-space indentation at the top level
// only.
type JSONFormatter struct {
	pretty bool
}

// NewJSONFormatter creates a JSON formatter. Pass pretty=true for a
// human-readable multi-line object.
func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{pretty: pretty}
}

// Format renders rec into buf and returns the number of bytes written.
func (f *JSONFormatter) Format(rec *Record, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	w := boundedWriter{buf: buf}
	var tmp [32]byte

	nl, ind, sep, comma := "", "", ":", ","
	if f.pretty {
		nl, ind, sep, comma = "\n", "  ", ": ", ",\n"
	}

	stringField := func(key string, write func()) {
		w.writeString(ind)
		w.writeByte('"')
		w.writeString(key)
		w.writeByte('"')
		w.writeString(sep)
		w.writeByte('"')
		write()
		w.writeByte('"')
	}
	numberField := func(key string, v uint64) {
		w.writeString(ind)
		w.writeByte('"')
		w.writeString(key)
		w.writeByte('"')
		w.writeString(sep)
		w.writeUint(v)
	}

	w.writeByte('{')
	w.writeString(nl)

	stringField("ts", func() { w.writeBytes(appendTimestamp(tmp[:0], rec.WallClockNS)) })
	w.writeString(comma)

	stringField("level", func() { w.writeString(rec.Level.String()) })
	w.writeString(comma)

	stringField("file", func() { w.writeEscaped([]byte(rec.FileName)) })
	w.writeString(comma)

	numberField("line", uint64(rec.Line))
	w.writeString(comma)

	stringField("func", func() { w.writeEscaped([]byte(rec.FuncName)) })
	w.writeString(comma)

	numberField("tid", uint64(rec.ThreadID))
	w.writeString(comma)

	numberField("pid", uint64(rec.ProcessID))
	w.writeString(comma)

	stringField("thread", func() { w.writeEscaped(cstr(rec.ThreadName[:])) })
	w.writeString(comma)

	numberField("seq", rec.SequenceID)
	w.writeString(comma)

	w.writeString(ind)
	w.writeString(`"tags"`)
	w.writeString(sep)
	w.writeByte('{')
	for t := 0; t < int(rec.TagCount); t++ {
		if t > 0 {
			w.writeByte(',')
		}
		w.writeByte('"')
		w.writeEscaped(cstr(rec.Tags[t].Key[:]))
		w.writeByte('"')
		w.writeString(sep)
		w.writeByte('"')
		w.writeEscaped(cstr(rec.Tags[t].Value[:]))
		w.writeByte('"')
	}
	w.writeByte('}')
	w.writeString(comma)

	stringField("msg", func() { w.writeEscaped(rec.Msg[:rec.MsgLen]) })
	w.writeString(nl)

	w.writeByte('}')
	return w.n
}
