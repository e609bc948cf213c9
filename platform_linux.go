//go:build linux

package ringlog

import "golang.org/x/sys/unix"

// currentThreadID resolves the kernel task id of the calling thread. The
// result is cached per goroutine when its context state is created, so a
// goroutine that later migrates OS threads keeps its first-seen id.
func currentThreadID() uint32 {
	return uint32(unix.Gettid())
}
