//go:build !linux && !windows

package ringlog

import "github.com/petermattis/goid"

// currentThreadID falls back to a hash of the goroutine id on platforms
// without a cheap OS thread id.
func currentThreadID() uint32 {
	id := uint64(goid.Get())
	h := uint32(2166136261)
	for i := 0; i < 8; i++ {
		h ^= uint32(id >> (8 * i) & 0xff)
		h *= 16777619
	}
	return h
}
