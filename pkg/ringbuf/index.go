package ringbuf

import "sync/atomic"

// Index is a wrapping cursor. The value is always smaller than the limit
// and resets to 0 when incremented past limit-1.
//
// An Index has a single owner that advances it, other goroutines may only
// read it. Advance publishes the new value atomically so everything the
// owner wrote before advancing is visible to a reader observing the new
// value.
type Index struct {
	limit uint32
	val   uint32
}

// NewIndex creates an Index wrapping at limit. limit must be positive.
func NewIndex(limit int) *Index {
	if limit <= 0 {
		panic("ringbuf: index limit must be positive")
	}
	return &Index{limit: uint32(limit)}
}

// Limit returns the exclusive upper bound of the value.
func (i *Index) Limit() int {
	return int(i.limit)
}

// Current returns the current value.
func (i *Index) Current() int {
	return int(atomic.LoadUint32(&i.val))
}

// PeekNext returns the value Advance would produce, without modifying it.
func (i *Index) PeekNext() int {
	return int(i.next(atomic.LoadUint32(&i.val)))
}

// Advance increments the value, wrapping back to 0 at the limit.
func (i *Index) Advance() {
	atomic.StoreUint32(&i.val, i.next(atomic.LoadUint32(&i.val)))
}

func (i *Index) next(v uint32) uint32 {
	if v+1 >= i.limit {
		return 0
	}
	return v + 1
}
