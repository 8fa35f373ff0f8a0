// Package pool provides growable-byte-buffer and typed-slice pooling used
// throughout the module to keep repeated Encode/Decode calls from
// reallocating their scratch space. bitio.Writer draws its per-call
// accumulator from ScratchBuffer; bitcode.Buffer draws the accumulator
// backing its amortized top-level Encode/EncodeInto calls from
// DocumentBuffer, which starts larger since a full encoded value is
// typically bigger than any one column's intermediate scratch space.
package pool

import (
	"io"
	"sync"
)

const (
	ScratchBufferDefaultSize   = 1024 * 16       // 16KiB
	ScratchBufferMaxThreshold  = 1024 * 128      // 128KiB
	DocumentBufferDefaultSize  = 1024 * 1024     // 1MiB
	DocumentBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable []byte with a manual reset, so a caller can drain
// it (Bytes) and later reuse its backing array (Reset) without the pool
// deciding when that happens.
type ByteBuffer struct {
	B []byte
}

func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

func (bb *ByteBuffer) Bytes() []byte { return bb.B }

func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

func (bb *ByteBuffer) Len() int { return len(bb.B) }

func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// MustWrite appends data, growing the buffer if needed. Named to signal it
// never fails, unlike Write which exists only to satisfy io.Writer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns bb.B[start:end]; panics on out-of-range indices, since a
// caller building an out-of-bounds slice request has already lost track of
// the buffer's own length accounting.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("pool: ByteBuffer.Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength re-slices bb.B to length n without changing its contents.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: ByteBuffer.SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend grows bb.B by n bytes in place, reporting false without touching
// the buffer if the existing capacity can't cover it.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}
	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends bb.B by n bytes, reallocating via Grow first if the
// current capacity can't cover it.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow ensures bb.B can accept requiredBytes more bytes without another
// reallocation. Small buffers grow by a fixed increment to avoid churn on
// the first few writes; past 4x that size, growth switches to 25% of
// current capacity so a buffer that keeps needing more doesn't reallocate
// on every single write.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ScratchBufferDefaultSize
	if cap(bb.B) > 4*ScratchBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)

	return len(data), nil
}

func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)

	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool. Buffers whose
// capacity has grown past maxThreshold are dropped instead of returned, so
// one abnormally large encode doesn't pin that much memory in the pool for
// every future Get.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool:         sync.Pool{New: func() any { return NewByteBuffer(defaultSize) }},
		maxThreshold: maxThreshold,
	}
}

func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)

	return bb
}

func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	scratchPool  = NewByteBufferPool(ScratchBufferDefaultSize, ScratchBufferMaxThreshold)
	documentPool = NewByteBufferPool(DocumentBufferDefaultSize, DocumentBufferMaxThreshold)
)

// GetScratchBuffer/PutScratchBuffer back bitio.NewWriter's default
// accumulator: many short-lived writers, one per boxed self-referential
// pointer occurrence, so the pool absorbs churn from small buffers.
func GetScratchBuffer() *ByteBuffer { return scratchPool.Get() }
func PutScratchBuffer(bb *ByteBuffer) { scratchPool.Put(bb) }

// GetDocumentBuffer/PutDocumentBuffer back bitcode.Buffer's top-level
// accumulator, which holds one entire encoded value at a time and so starts
// out sized for that, not for a single column's scratch space.
func GetDocumentBuffer() *ByteBuffer { return documentPool.Get() }
func PutDocumentBuffer(bb *ByteBuffer) { documentPool.Put(bb) }
