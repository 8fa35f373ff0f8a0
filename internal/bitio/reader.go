package bitio

import (
	"encoding/binary"

	"github.com/arloliu/bitcode/bcerr"
)

// Reader consumes unaligned bit-level reads from a borrowed byte slice. It
// never copies or retains a mutable reference beyond what was passed to
// NewReader, and it never reads past the end of that slice.
//
// A Reader is not safe for concurrent use. Zero value is not usable; use
// NewReader.
type Reader struct {
	data     []byte
	pos      int // next unconsumed byte in data
	bitBuf   uint64
	bitCount uint // number of valid low bits in bitBuf
}

// NewReader creates a Reader borrowing data. The caller must not mutate data
// while the Reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// RemainingBits reports how many bits are left to read.
func (r *Reader) RemainingBits() int {
	return (len(r.data)-r.pos)*8 + int(r.bitCount)
}

// fill tops up the shift register from the backing slice until it holds
// more than 56 bits or the slice is exhausted. A register left with at
// least 57 bits after fill can service any single read of up to 56 bits
// without a second refill; wider reads are split in two.
func (r *Reader) fill() {
	for r.bitCount <= 56 && r.pos < len(r.data) {
		if r.bitCount == 0 && len(r.data)-r.pos >= 8 {
			r.bitBuf = binary.LittleEndian.Uint64(r.data[r.pos:])
			r.pos += 8
			r.bitCount = 64

			return
		}

		r.bitBuf |= uint64(r.data[r.pos]) << r.bitCount
		r.pos++
		r.bitCount += 8
	}
}

// PeekBits returns the next n bits (0 <= n <= 64) without consuming them.
func (r *Reader) PeekBits(n int) (uint64, error) {
	if n > 56 {
		c := *r

		return c.ReadBits(n)
	}
	r.fill()
	if uint(n) > r.bitCount {
		return 0, bcerr.New(bcerr.Eof, "bitio.PeekBits", "not enough bits remaining")
	}
	if n == 64 {
		return r.bitBuf, nil
	}

	return r.bitBuf & ((uint64(1) << uint(n)) - 1), nil
}

// Advance consumes n bits (0 <= n <= 64) without returning their value.
func (r *Reader) Advance(n int) error {
	if n > 56 {
		_, err := r.ReadBits(n)

		return err
	}
	r.fill()
	if uint(n) > r.bitCount {
		return bcerr.New(bcerr.Eof, "bitio.Advance", "not enough bits remaining")
	}

	if n == 64 {
		r.bitBuf = 0
	} else {
		r.bitBuf >>= uint(n)
	}
	r.bitCount -= uint(n)

	return nil
}

// ReadBits reads and consumes the next n bits (0 <= n <= 64). The result's
// bit 0 is the first bit that was written to the stream, matching Writer's
// least-significant-bit-first convention. Fails with bcerr.Eof when fewer
// than n bits remain.
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n <= 0 {
		return 0, nil
	}
	if n > 56 {
		if n > r.RemainingBits() {
			return 0, bcerr.New(bcerr.Eof, "bitio.ReadBits", "not enough bits remaining")
		}
		lo, _ := r.ReadBits(32)
		hi, _ := r.ReadBits(n - 32)

		return lo | hi<<32, nil
	}

	r.fill()
	if uint(n) > r.bitCount {
		return 0, bcerr.New(bcerr.Eof, "bitio.ReadBits", "not enough bits remaining")
	}

	var v uint64
	if n == 64 {
		v = r.bitBuf
		r.bitBuf = 0
	} else {
		v = r.bitBuf & ((uint64(1) << uint(n)) - 1)
		r.bitBuf >>= uint(n)
	}
	r.bitCount -= uint(n)

	return v, nil
}

// ReadBit reads and consumes a single bit, returning 1 or 0.
func (r *Reader) ReadBit() (int, error) {
	v, err := r.ReadBits(1)
	if err != nil {
		return 0, err
	}

	return int(v), nil
}

// ReadByteAligned reads n bytes directly from the backing slice. The caller
// must ensure the reader is currently byte-aligned; this is the fast path
// counterpart of Writer.WriteByteAligned.
func (r *Reader) ReadByteAligned(n int) ([]byte, error) {
	if r.bitCount == 0 {
		if len(r.data)-r.pos < n {
			return nil, bcerr.New(bcerr.Eof, "bitio.ReadByteAligned", "not enough bytes remaining")
		}
		out := r.data[r.pos : r.pos+n]
		r.pos += n

		return out, nil
	}

	out := make([]byte, n)
	for i := range out {
		v, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}

	return out, nil
}

// ExpectEOF verifies that no unconsumed bits remain beyond the final byte's
// zero padding. If bitCount bits remain, they must all be zero (padding);
// any nonzero remaining bit, or any unconsumed whole byte, is an error.
func (r *Reader) ExpectEOF() error {
	if r.pos < len(r.data) {
		return bcerr.New(bcerr.ExpectedEof, "bitio.ExpectEOF", "unconsumed bytes remain")
	}
	if r.bitCount > 0 && r.bitBuf != 0 {
		return bcerr.New(bcerr.ExpectedEof, "bitio.ExpectEOF", "unconsumed nonzero bits remain")
	}

	return nil
}
