//go:build !ringlog_embedded

package ringlog

// Compile-time sizing for the default (hosted) build. Building with
// -tags ringlog_embedded shrinks these and disables the consumer goroutine;
// the host application then calls Drain cooperatively.
const (
	// RingSize is the slot count of the MPSC ring. Must be a power of two.
	RingSize = 8192

	// MaxMsgLen is the inline message capacity of a Record in bytes,
	// including the terminating NUL.
	MaxMsgLen = 384

	// hasConsumerThread selects whether Start spawns the consumer goroutine.
	hasConsumerThread = true
)
