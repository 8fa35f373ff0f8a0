package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// DefaultRecursionDepthCap bounds how many times a self-referential type
// may box into itself when the caller supplies no explicit cap.
const DefaultRecursionDepthCap = 128

// CheckRecursionDepth rejects a recursive descent past cap on both the
// encode side (refusing to build an oversized value) and the decode side
// (refusing a stream that would otherwise force unbounded recursion).
func CheckRecursionDepth(op string, depth, cap int) error {
	if cap <= 0 {
		cap = DefaultRecursionDepthCap
	}
	if depth > cap {
		return bcerr.Newf(bcerr.Invalid, op, "recursion depth %d exceeds cap %d", depth, cap)
	}

	return nil
}

// EncodeBoxPresent writes the presence bit for one occurrence of a
// self-referential pointer: 1 means a gamma-coded bit length and a
// byte-aligned, independently-encoded payload for the pointed-to value
// follow (see the driver package's selfRefEncNode), 0 means the pointer
// was nil and nothing else follows for this occurrence.
func EncodeBoxPresent(w *bitio.Writer, present bool) {
	if present {
		w.WriteBit(1)
	} else {
		w.WriteBit(0)
	}
}

// DecodeBoxPresent reads the presence bit written by EncodeBoxPresent.
func DecodeBoxPresent(r *bitio.Reader) (bool, error) {
	bit, err := r.ReadBit()
	if err != nil {
		return false, err
	}

	return bit != 0, nil
}
