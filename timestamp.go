package ringlog

import "time"

var monotonicBase = time.Now()

// monotonicNowNS returns nanoseconds on the platform monotonic clock,
// relative to an unspecified epoch (process start). It never goes backwards.
func monotonicNowNS() uint64 {
	return uint64(time.Since(monotonicBase))
}

// wallClockNowNS returns epoch-relative wall-clock nanoseconds.
func wallClockNowNS() uint64 {
	return uint64(time.Now().UnixNano())
}

// wallTime converts wall-clock nanoseconds to a local-zone time.Time.
func wallTime(wallNS uint64) time.Time {
	return time.Unix(0, int64(wallNS))
}

func appendPad2(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10%10), byte('0'+v%10))
}

func appendPad4(dst []byte, v int) []byte {
	dst = appendPad2(dst, v/100)
	return appendPad2(dst, v%100)
}

// appendDate renders "YYYY-MM-DD" for the wall-clock timestamp.
func appendDate(dst []byte, wallNS uint64) []byte {
	y, m, d := wallTime(wallNS).Date()
	dst = appendPad4(dst, y)
	dst = append(dst, '-')
	dst = appendPad2(dst, int(m))
	dst = append(dst, '-')
	return appendPad2(dst, d)
}

// appendClock renders "HH:MM:SS" for the wall-clock timestamp.
func appendClock(dst []byte, wallNS uint64) []byte {
	h, m, s := wallTime(wallNS).Clock()
	dst = appendPad2(dst, h)
	dst = append(dst, ':')
	dst = appendPad2(dst, m)
	dst = append(dst, ':')
	return appendPad2(dst, s)
}

// appendMicros renders ".uuuuuu", the six-digit fractional second.
func appendMicros(dst []byte, wallNS uint64) []byte {
	us := int(wallNS / 1000 % 1000000)
	dst = append(dst, '.')
	dst = appendPad2(dst, us/10000)
	dst = appendPad2(dst, us/100%100)
	return appendPad2(dst, us%100)
}

// appendTimestamp renders "YYYY-MM-DD HH:MM:SS.uuuuuu", the form used by the
// JSON formatter's ts field.
func appendTimestamp(dst []byte, wallNS uint64) []byte {
	dst = appendDate(dst, wallNS)
	dst = append(dst, ' ')
	dst = appendClock(dst, wallNS)
	return appendMicros(dst, wallNS)
}
