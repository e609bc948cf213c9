package ringlog

import "sync/atomic"

// Compile-time check that the built-in ring size is a power of two.
var _ [1]struct{} = [RingSize&(RingSize-1) + 1]struct{}{}

// slot is one cell of the ring. sequence encodes the slot's generation for
// the bounded MPSC protocol; the padding keeps the contended sequence word
// on its own cache line, away from the record payload.
type slot struct {
	sequence atomic.Uint32
	_        [cacheLineSize - 4]byte
	record   Record
}

// mpscRing is a bounded lock-free multi-producer single-consumer queue of
// Records. Producers contend only on writePos through a CAS loop; readPos
// is owned by the single consumer and never shared. The two position words
// sit on separate cache lines.
type mpscRing struct {
	slots []slot
	mask  uint32

	_        [cacheLineSize]byte
	writePos atomic.Uint32
	_        [cacheLineSize - 4]byte
	readPos  uint32
	_        [cacheLineSize - 4]byte
}

// newMPSCRing creates a ring with the given slot count. Capacity must be a
// power of two so the position-to-index mapping is a mask; anything else is
// a programming error and panics at construction.
func newMPSCRing(capacity int) *mpscRing {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("ringlog: ring capacity must be a power of two")
	}
	r := &mpscRing{
		slots: make([]slot, capacity),
		mask:  uint32(capacity - 1),
	}
	for i := range r.slots {
		r.slots[i].sequence.Store(uint32(i))
	}
	return r
}

// TryPush copies rec into the ring. It returns false when the ring is full
// for the current generation; it never blocks and never allocates. Safe to
// call from any number of goroutines.
func (r *mpscRing) TryPush(rec *Record) bool {
	pos := r.writePos.Load()
	for {
		s := &r.slots[pos&r.mask]
		seq := s.sequence.Load()
		diff := int32(seq - pos) // wraparound-safe comparison
		switch {
		case diff == 0:
			// Slot free for this generation; reserve it.
			if r.writePos.CompareAndSwap(pos, pos+1) {
				s.record = *rec
				s.sequence.Store(pos + 1)
				return true
			}
			pos = r.writePos.Load()
		case diff < 0:
			return false
		default:
			// Another producer advanced past us; chase the write position.
			pos = r.writePos.Load()
		}
	}
}

// TryPop copies the oldest ready record into out and frees its slot for the
// next generation. It may only be called from the single consumer.
func (r *mpscRing) TryPop(out *Record) bool {
	s := &r.slots[r.readPos&r.mask]
	if s.sequence.Load() != r.readPos+1 {
		return false
	}
	*out = s.record
	s.sequence.Store(r.readPos + uint32(len(r.slots)))
	r.readPos++
	return true
}

// Empty reports whether no record is ready. Consumer side only.
func (r *mpscRing) Empty() bool {
	s := &r.slots[r.readPos&r.mask]
	return s.sequence.Load() != r.readPos+1
}

// Capacity returns the slot count.
func (r *mpscRing) Capacity() int { return len(r.slots) }
