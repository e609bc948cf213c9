package ringlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DailyFileSink writes {baseDir}/{baseName}_YYYY-MM-DD.log and rolls to a
// new file when a record's wall-clock day differs from the open file's day.
// The record's own timestamp decides which day file it lands in. With
// maxDays > 0, files older than that many days are unlinked each time a day
// file is opened: at construction and on every rollover.
type DailyFileSink struct {
	sinkCore
	baseDir    string
	baseName   string
	maxDays    int
	useUTC     bool
	file       *os.File
	currentDay int
}

// NewDailyFileSink creates the directory (recursively) and opens today's
// file for append. maxDays of 0 disables retention cleanup; useUTC selects
// the zone used for day boundaries and file names.
func NewDailyFileSink(baseDir, baseName string, maxDays int, useUTC bool) *DailyFileSink {
	s := &DailyFileSink{
		baseDir:    baseDir,
		baseName:   baseName,
		maxDays:    maxDays,
		useUTC:     useUTC,
		currentDay: -1,
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ringlog: daily sink failed to create %q: %v\n", baseDir, err)
	}
	s.openFileFor(wallClockNowNS())
	return s
}

func (s *DailyFileSink) location() *time.Location {
	if s.useUTC {
		return time.UTC
	}
	return time.Local
}

// dayKey maps a wall-clock timestamp to a strictly monotonic day integer.
func (s *DailyFileSink) dayKey(wallNS uint64) int {
	t := time.Unix(0, int64(wallNS)).In(s.location())
	return t.YearDay() - 1 + (t.Year()-1900)*366
}

// Filename returns the day file a record with the given wall-clock
// timestamp belongs to.
func (s *DailyFileSink) Filename(wallNS uint64) string {
	t := time.Unix(0, int64(wallNS)).In(s.location())
	return filepath.Join(s.baseDir,
		fmt.Sprintf("%s_%04d-%02d-%02d.log", s.baseName, t.Year(), int(t.Month()), t.Day()))
}

func (s *DailyFileSink) openFileFor(wallNS uint64) {
	if s.file != nil {
		s.file.Sync()
		s.file.Close()
		s.file = nil
	}
	name := s.Filename(wallNS)
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringlog: daily sink failed to open %q: %v\n", name, err)
	} else {
		s.file = file
	}
	s.currentDay = s.dayKey(wallNS)
	if s.maxDays > 0 {
		s.cleanupOldFiles()
	}
}

func (s *DailyFileSink) cleanupOldFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return
	}
	prefix := s.baseName + "_"
	cutoff := time.Now().Add(-time.Duration(s.maxDays) * 24 * time.Hour)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.baseDir, name))
		}
	}
}

// Write rolls the file over if the record belongs to a different day, then
// appends the formatted line and a newline.
func (s *DailyFileSink) Write(rec *Record) {
	if !s.ShouldLog(rec.Level) {
		return
	}
	if s.dayKey(rec.WallClockNS) != s.currentDay {
		s.openFileFor(rec.WallClockNS)
	}
	if s.formatter == nil {
		s.formatter = NewPatternFormatter(defaultFilePattern, false)
	}
	n := s.format(rec)
	if n == 0 || s.file == nil {
		return
	}
	s.file.Write(s.buf[:n])
	s.file.Write(newlineByte)
}

// Flush pushes buffered data to disk.
func (s *DailyFileSink) Flush() {
	if s.file != nil {
		s.file.Sync()
	}
}

// Close syncs and releases the file handle.
func (s *DailyFileSink) Close() error {
	if s.file == nil {
		return nil
	}
	s.file.Sync()
	err := s.file.Close()
	s.file = nil
	return err
}
