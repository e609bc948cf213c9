package ringlog

import (
	"fmt"
	"os"
)

// RotatingFileSink appends to basePath and rotates by size: when a write
// would push the current file past maxFileSize, the file is closed and the
// numbered backups shuffle up (basePath -> basePath.1.log ->
// basePath.2.log -> ...), discarding the oldest. At steady state at most
// maxFiles+1 files exist on disk.
type RotatingFileSink struct {
	sinkCore
	basePath    string
	maxFileSize int64
	maxFiles    int
	file        *os.File
	currentSize int64
}

// NewRotatingFileSink opens (or creates) basePath in append mode. The
// current byte count starts from the existing file size. An open failure is
// reported once on stderr; subsequent writes are silent no-ops.
func NewRotatingFileSink(basePath string, maxFileSize int64, maxFiles int) *RotatingFileSink {
	s := &RotatingFileSink{
		basePath:    basePath,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}
	s.openFile()
	return s
}

func (s *RotatingFileSink) openFile() {
	file, err := os.OpenFile(s.basePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringlog: rotating sink failed to open %q: %v\n", s.basePath, err)
		s.file = nil
		return
	}
	s.file = file
	s.currentSize = 0
	if fi, err := file.Stat(); err == nil {
		s.currentSize = fi.Size()
	}
}

func (s *RotatingFileSink) rotate() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	for i := s.maxFiles; i > 0; i-- {
		src := s.basePath
		if i > 1 {
			src = fmt.Sprintf("%s.%d.log", s.basePath, i-1)
		}
		dst := fmt.Sprintf("%s.%d.log", s.basePath, i)
		if i == s.maxFiles {
			os.Remove(dst)
		}
		os.Rename(src, dst)
	}
	s.openFile()
}

// Write formats the record, rotating first if the line would overflow the
// current file, then appends the line and a newline.
func (s *RotatingFileSink) Write(rec *Record) {
	if !s.ShouldLog(rec.Level) {
		return
	}
	if s.formatter == nil {
		s.formatter = NewPatternFormatter(defaultFilePattern, false)
	}
	n := s.format(rec)
	if n == 0 || s.file == nil {
		return
	}
	if s.currentSize+int64(n)+1 > s.maxFileSize {
		s.rotate()
		if s.file == nil {
			return
		}
	}
	if written, err := s.file.Write(s.buf[:n]); err == nil {
		s.currentSize += int64(written)
	}
	if _, err := s.file.Write(newlineByte); err == nil {
		s.currentSize++
	}
}

// Flush pushes buffered data to disk.
func (s *RotatingFileSink) Flush() {
	if s.file != nil {
		s.file.Sync()
	}
}

// Close syncs and releases the file handle.
func (s *RotatingFileSink) Close() error {
	if s.file == nil {
		return nil
	}
	s.file.Sync()
	err := s.file.Close()
	s.file = nil
	return err
}
