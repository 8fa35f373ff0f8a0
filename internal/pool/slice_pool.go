package pool

import "sync"

// SlicePool recycles a single typed slice across unrelated call sites, the
// same niche sync.Pool fills for ByteBufferPool but for a fixed-length
// scratch slice instead of a growable byte buffer: Get resizes (reusing the
// backing array when it's already big enough) and hands back a cleanup
// closure the caller must run once done, typically via defer.
type SlicePool[T any] struct {
	pool sync.Pool
}

func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{New: func() any { s := make([]T, 0); return &s }},
	}
}

// Get returns a slice of exactly length size and a cleanup func that
// returns its backing array to the pool. The slice's contents are
// unspecified — callers write every index before reading it back.
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	s := (*ptr)[:0]
	if cap(s) < size {
		s = make([]T, size)
	} else {
		s = s[:size]
	}
	*ptr = s

	return s, func() { p.pool.Put(ptr) }
}

var intSlicePool = NewSlicePool[int]()

// GetIntSlice retrieves a length-size []int from the shared pool; used for
// short-lived per-call scratch (tallying a tagged union's variant counts,
// collecting a sequence's per-occurrence lengths) rather than for values
// handed back to a caller beyond the scope of one decode step.
func GetIntSlice(size int) ([]int, func()) { return intSlicePool.Get(size) }
