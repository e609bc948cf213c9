//go:build windows

package ringlog

import "golang.org/x/sys/windows"

// currentThreadID resolves the OS thread id of the calling thread. The
// result is cached per goroutine when its context state is created.
func currentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}
