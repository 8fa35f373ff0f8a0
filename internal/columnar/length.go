package columnar

import (
	"math"

	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// MaxSequenceLength is the compile-time maximum sequence length bound from
// §6: (2^29)-1, used whenever an element type has zero minimum bit width
// (so remaining_bits/min_width would be an unbounded or division-by-zero
// bound).
const MaxSequenceLength = (1 << 29) - 1

// LengthColumn implements the LengthCoder capability: gamma-coded
// non-negative counts, one per sequence/string occurrence.
type LengthColumn struct{}

// EncodeLen writes n using the gamma code.
func (LengthColumn) EncodeLen(w *bitio.Writer, n int) {
	bitio.EncodeGamma(w, uint64(n))
}

// DecodeLen reads a gamma-coded length, rejecting any value exceeding
// bound. bound must be a conservative upper bound derived from the reader's
// remaining bit budget (invariant 1): the caller is responsible for
// computing min_bits_per_element and deriving bound from
// remaining_bits/min_bits_per_element (or MaxSequenceLength when the
// element width is zero), per §4.7.
func (LengthColumn) DecodeLen(r *bitio.Reader, bound int) (int, error) {
	x, err := bitio.DecodeGamma(r, uint64(bound))
	if err != nil {
		return 0, err
	}
	if x > math.MaxInt32 {
		return 0, bcerr.New(bcerr.Invalid, "columnar.LengthColumn.DecodeLen", "length exceeds platform int range")
	}

	return int(x), nil
}

// ElementBound computes the conservative upper bound on an element count
// given the reader's remaining bits and an element's minimum bit width.
// When minBitsPerElement is 0 the bound is the absolute cap instead of an
// unbounded (or divide-by-zero) ratio.
func ElementBound(remainingBits, minBitsPerElement int) int {
	if minBitsPerElement <= 0 {
		return MaxSequenceLength
	}

	bound := remainingBits / minBitsPerElement
	if bound > MaxSequenceLength {
		return MaxSequenceLength
	}

	return bound
}
