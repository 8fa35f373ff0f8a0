package bitio

import (
	"math/bits"

	"github.com/arloliu/bitcode/bcerr"
)

// gammaCap bounds the leading-zero run length a gamma code may declare. It
// is the bit width of a uint64 minus one, since a (k+1)-bit chunk must fit
// in 64 bits.
const gammaCap = 63

// reverseBits reverses the low width bits of v, leaving the rest zero. It is
// used to translate between the gamma code's "most-significant-bit first"
// chunk convention and the bit buffer's least-significant-bit-first stream
// order: writing reverseBits(chunk, width) with WriteBits emits chunk's
// bits in MSB-first order, and reading width bits with ReadBits then
// reversing recovers chunk.
func reverseBits(v uint64, width int) uint64 {
	if width <= 0 {
		return 0
	}

	return bits.Reverse64(v) >> uint(64-width)
}

// EncodeGamma writes x using the gamma code: k = floor(log2(x+1)) leading
// zero bits, then the (k+1)-bit binary representation of (x+1),
// most-significant bit first.
func EncodeGamma(w *Writer, x uint64) {
	chunk := x + 1
	width := bits.Len64(chunk)
	k := width - 1

	w.WriteBits(0, k)
	w.WriteBits(reverseBits(chunk, width), width)
}

// DecodeGamma reads a gamma-coded value, rejecting a leading-zero run longer
// than gammaCap or a decoded value exceeding bound (a caller-declared upper
// bound used to stop a forged length from ever being materialized).
func DecodeGamma(r *Reader, bound uint64) (uint64, error) {
	k := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		k++
		if k > gammaCap {
			return 0, bcerr.New(bcerr.Invalid, "bitio.DecodeGamma", "leading zero run exceeds cap")
		}
	}

	rest, err := r.ReadBits(k)
	if err != nil {
		return 0, err
	}

	chunk := (uint64(1) << uint(k)) | reverseBits(rest, k)
	x := chunk - 1

	if x > bound {
		return 0, bcerr.New(bcerr.Invalid, "bitio.DecodeGamma", "value exceeds declared bound")
	}

	return x, nil
}
