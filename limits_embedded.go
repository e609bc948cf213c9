//go:build ringlog_embedded

package ringlog

// Compile-time sizing for the embedded build: smaller ring and message
// buffers, no consumer goroutine. The host application drives the backend
// through Drain.
const (
	RingSize = 256

	MaxMsgLen = 128

	hasConsumerThread = false
)
