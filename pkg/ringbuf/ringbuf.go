// Package ringbuf provides a lock-free single-producer/single-consumer
// byte ring buffer.
package ringbuf

import "sync/atomic"

// DefaultCapacity is the number of bytes a buffer holds unless
// specified otherwise.
const DefaultCapacity = 64

// RingBuf is a fixed-capacity circular byte buffer.
//
// To tell a full buffer from an empty one without a separate counter,
// one slot is never filled: a buffer of capacity C has C+1 slots.
//
// The producer only advances the write index and the consumer only
// advances the read index. Each side commits its slot access before
// advancing its own index, which is what makes one concurrent producer
// and one concurrent consumer safe without locks. Use Split to hand the
// two roles to different goroutines.
type RingBuf struct {
	buf   []byte
	read  *Index
	write *Index
	split uint32
}

// New creates an empty buffer holding up to capacity bytes.
func New(capacity int) *RingBuf {
	if capacity < 1 {
		panic("ringbuf: capacity must be at least 1")
	}
	size := capacity + 1
	return &RingBuf{
		buf:   make([]byte, size),
		read:  NewIndex(size),
		write: NewIndex(size),
	}
}

// Cap returns the maximum number of bytes the buffer holds.
func (r *RingBuf) Cap() int {
	return len(r.buf) - 1
}

// Len returns the number of unconsumed bytes.
func (r *RingBuf) Len() int {
	w, rd := r.write.Current(), r.read.Current()
	if w >= rd {
		return w - rd
	}
	return len(r.buf) - rd + w
}

// Push adds a byte. It returns ErrFull without touching the buffer if
// Cap() bytes are already held.
func (r *RingBuf) Push(b byte) error {
	if r.Full() {
		return ErrFull
	}
	r.buf[r.write.Current()] = b
	// the slot must be written before the consumer can see the new index.
	r.write.Advance()
	return nil
}

// Pop removes and returns the oldest byte. ok is false if the buffer
// is empty.
func (r *RingBuf) Pop() (b byte, ok bool) {
	if r.Empty() {
		return 0, false
	}
	b = r.buf[r.read.Current()]
	// release the slot to the producer only after it has been read.
	r.read.Advance()
	return b, true
}

// Peek returns the oldest byte without removing it. ok is false if the
// buffer is empty. The slot stays held until Discard is called.
func (r *RingBuf) Peek() (b byte, ok bool) {
	if r.Empty() {
		return 0, false
	}
	return r.buf[r.read.Current()], true
}

// Discard removes the oldest byte, releasing its slot to the producer.
// It returns false if the buffer is empty.
func (r *RingBuf) Discard() bool {
	if r.Empty() {
		return false
	}
	r.read.Advance()
	return true
}

// Full is true if the write index is one position behind the read index.
func (r *RingBuf) Full() bool {
	return r.write.PeekNext() == r.read.Current()
}

// Empty is true if the read index and the write index are equal.
func (r *RingBuf) Empty() bool {
	return r.read.Current() == r.write.Current()
}

// Split returns the producer and consumer handles of the buffer.
// It can be called only once, so each role has exactly one owner.
func (r *RingBuf) Split() (*Producer, *Consumer) {
	if !atomic.CompareAndSwapUint32(&r.split, 0, 1) {
		panic("ringbuf: already split")
	}
	return &Producer{r: r}, &Consumer{r: r}
}

// Producer is the writing side of a split RingBuf.
type Producer struct {
	r *RingBuf
}

// Push implements RingBuf.Push.
func (p *Producer) Push(b byte) error {
	return p.r.Push(b)
}

// Full implements RingBuf.Full.
func (p *Producer) Full() bool {
	return p.r.Full()
}

// Consumer is the reading side of a split RingBuf.
type Consumer struct {
	r *RingBuf
}

// Pop implements RingBuf.Pop.
func (c *Consumer) Pop() (byte, bool) {
	return c.r.Pop()
}

// Peek implements RingBuf.Peek.
func (c *Consumer) Peek() (byte, bool) {
	return c.r.Peek()
}

// Discard implements RingBuf.Discard.
func (c *Consumer) Discard() bool {
	return c.r.Discard()
}

// Empty implements RingBuf.Empty.
func (c *Consumer) Empty() bool {
	return c.r.Empty()
}

// Len implements RingBuf.Len.
func (c *Consumer) Len() int {
	return c.r.Len()
}
