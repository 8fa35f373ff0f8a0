package encoding

import "github.com/arloliu/bitcode/internal/bitio"

// Encoder is the write-side capability every column codec in
// internal/columnar implements for its value type T: accumulate values
// pushed during a pre-order encode walk, then flush the finished column to
// a bit writer.
//
// Reserve/EncodeValue may be called any number of times before FinishInto;
// FinishInto writes the column's header and body and resets the encoder so
// it can be reused for the next top-level Encode call.
type Encoder[T any] interface {
	// Reserve pre-sizes the encoder's backing storage for n upcoming
	// EncodeValue calls. It is an optimization hint, never required for
	// correctness.
	Reserve(n int)

	// EncodeValue pushes one value onto the column.
	EncodeValue(v *T)

	// FinishInto writes the accumulated column to w and resets the
	// encoder.
	FinishInto(w *bitio.Writer)
}

// Decoder is Encoder's read-side counterpart: parse and front-loaded
// validate a column, then yield its values one at a time.
//
// Populate must be called exactly once before any DecodeInPlace call, with
// n equal to the number of occurrences the column was encoded for.
// DecodeInPlace after a successful Populate never fails; it only fails if
// called more than n times.
type Decoder[T any] interface {
	// Populate parses the column header, checks the column body's
	// bit-exact footprint against the reader's remaining bits, validates
	// every value, and buffers the result for sequential retrieval.
	Populate(r *bitio.Reader, n int) error

	// DecodeInPlace pops the next validated value from the column.
	DecodeInPlace(v *T) error
}

// VariantSelector is implemented by a discriminant decoder: it exposes the
// validated variant tag chosen at a given occurrence index, so a sum
// type's decode walk knows which variant payload decoder to pop from next.
type VariantSelector interface {
	// Variant returns the tag at occurrence i. i must be in [0, n) for the
	// n passed to the most recent Populate call.
	Variant(i int) (int, error)
}

// LengthCoder is implemented by the length column shared by every
// sequence, byte string, text string, and map: gamma-coded non-negative
// occurrence counts.
type LengthCoder interface {
	// EncodeLen writes one occurrence's element count.
	EncodeLen(w *bitio.Writer, n int)

	// DecodeLen reads one gamma-coded count, rejecting any value
	// exceeding bound. The caller derives bound from the reader's
	// remaining bits and the element type's minimum bit width, so a
	// forged length can never be materialized (invariant 1).
	DecodeLen(r *bitio.Reader, bound int) (int, error)
}
