// Package ringlog provides a structured, asynchronous, high-throughput
// logging core for latency-sensitive services.
//
// Overview:
// Producers - arbitrary application goroutines - assemble fully
// self-contained fixed-size records and publish them to a bounded lock-free
// MPSC ring. A single consumer goroutine drains the ring and hands each
// record to the configured sinks. Producers never block on I/O and never
// synchronize with each other except through atomics.
//
// Key Features:
// - Bounded lock-free multi-producer/single-consumer record queue
// - Fixed-size records: no allocation on the hot path
// - Multiple log levels (TRACE through FATAL) with a compile-time floor
// - Process-global and goroutine-scoped key/value tags
// - Pattern and JSON formatters rendering into bounded buffers
// - Console, rotating-file, daily-file, memory-ring, callback and slog
//   bridge sinks
// - Adaptive idle backoff on the consumer (spin, yield, sleep)
// - Drop counting instead of backpressure when the ring is full
// - Optional producer-side rate limiting
// - Embedded mode (-tags ringlog_embedded): no consumer goroutine, the
//   host drains cooperatively
//
// Getting Started:
//
//	package main
//
//	import "github.com/calder-robotics/ringlog"
//
//	func main() {
//	    logger, err := ringlog.New(ringlog.Config{Level: ringlog.INFO})
//	    if err != nil {
//	        panic(err)
//	    }
//	    logger.AddSink(ringlog.NewConsoleSink())
//	    logger.Start()
//	    defer logger.Stop() // drains the ring and flushes every sink
//
//	    logger.Infof("service up on %s:%d", "0.0.0.0", 9090)
//	}
//
// Tags:
//
//	ctx := ringlog.Context()
//	ctx.SetGlobalTag("env", "dev")        // on every record, every goroutine
//	tag := ringlog.NewScopedTag("req", "456") // this goroutine only
//	defer tag.Close()
//
// Delivery semantics:
// A full ring rejects the record and bumps Logger.DropCount; nothing ever
// blocks a producer. Records reach sinks in ring order, which preserves each
// producer's own order but may interleave sequence ids across producers.
// Stop drains the ring to empty before flushing sinks, so no accepted
// record is lost on a clean shutdown.
package ringlog
