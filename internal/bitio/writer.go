// Package bitio implements the unaligned bit-level buffer that every column
// codec in internal/columnar builds on: a growable bit writer and a
// borrowing bit reader, plus the gamma coding and bit-width helpers used to
// pick a column's physical representation.
//
// Bits are filled least-significant-bit first: bit 0 of byte 0 holds the
// first bit written. This is the opposite convention from a Gorilla-style
// XOR encoder (which is MSB-first), but the shape of the implementation is
// the same one: a 64-bit shift register that defers byte emission until it
// has a full byte to drain, backed by a growable byte buffer.
package bitio

import (
	"github.com/arloliu/bitcode/internal/pool"
)

// Writer accumulates unaligned bit-level writes into a growable byte buffer.
//
// A Writer is not safe for concurrent use. Zero value is not usable; use
// NewWriter.
type Writer struct {
	buf      *pool.ByteBuffer
	bitBuf   uint64
	bitCount uint // number of valid low bits in bitBuf, always < 64 between calls
}

// NewWriter creates a Writer backed by a buffer from the shared byte-buffer
// pool. Callers that want buffer reuse across repeated top-level Encode
// calls should use NewWriterWithBuffer with a buffer obtained once and
// reset between calls.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetScratchBuffer()}
}

// NewWriterWithBuffer creates a Writer over an existing buffer, resetting it
// first. This is how bitcode.Buffer amortizes allocations across repeated
// top-level Encode calls.
func NewWriterWithBuffer(buf *pool.ByteBuffer) *Writer {
	buf.Reset()
	return &Writer{buf: buf}
}

// WriteBit writes a single bit: 1 if bit is non-zero, 0 otherwise.
func (w *Writer) WriteBit(bit int) {
	if bit != 0 {
		w.bitBuf |= uint64(1) << w.bitCount
	}
	w.bitCount++
	w.drain()
}

// WriteBits writes the low n bits of value (0 <= n <= 64), least-significant
// bit first: value's bit 0 is the first bit appended to the stream.
func (w *Writer) WriteBits(value uint64, n int) {
	if n <= 0 {
		return
	}
	if n < 64 {
		value &= (uint64(1) << uint(n)) - 1
	}

	if w.bitCount+uint(n) <= 64 {
		w.bitBuf |= value << w.bitCount
		w.bitCount += uint(n)
		w.drain()

		return
	}

	fit := 64 - w.bitCount
	if fit > 0 {
		w.bitBuf |= (value & ((uint64(1) << fit) - 1)) << w.bitCount
	}
	w.bitCount = 64
	w.drain()

	remaining := uint(n) - fit
	w.bitBuf = value >> fit
	w.bitCount = remaining
	w.drain()
}

// WriteByteAligned appends data directly to the byte buffer. The caller must
// ensure the writer is currently byte-aligned (BitLength()%8 == 0); this is
// the fast path for multi-byte integers emitted via the little-endian
// byte-aligned representation (spec'd bit/byte order, see §6 in the design
// notes).
func (w *Writer) WriteByteAligned(data []byte) {
	if w.bitCount == 0 {
		w.buf.MustWrite(data)
		return
	}

	for _, b := range data {
		w.WriteBits(uint64(b), 8)
	}
}

// drain moves every complete byte out of the shift register into the byte
// buffer, leaving fewer than 8 valid bits behind.
func (w *Writer) drain() {
	for w.bitCount >= 8 {
		w.buf.B = append(w.buf.B, byte(w.bitBuf))
		w.bitBuf >>= 8
		w.bitCount -= 8
	}
}

// BitLength returns the number of bits written so far, including any
// partial final byte still held in the shift register.
func (w *Writer) BitLength() int {
	return w.buf.Len()*8 + int(w.bitCount)
}

// Finish flushes any partial final byte (zero-padded in the high bits) and
// returns the accumulated byte slice. The Writer must not be used after
// Finish without a Reset.
func (w *Writer) Finish() []byte {
	if w.bitCount > 0 {
		w.buf.B = append(w.buf.B, byte(w.bitBuf))
		w.bitBuf = 0
		w.bitCount = 0
	}

	return w.buf.Bytes()
}

// Reset clears the writer so its backing buffer can be reused for another
// top-level encode call.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.bitBuf = 0
	w.bitCount = 0
}
