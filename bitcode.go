// Package bitcode encodes statically-typed Go values into a compact,
// non-self-describing binary columnar layout and decodes them back,
// optimizing for small encoded size, high throughput, and downstream
// compressibility. See SPEC_FULL.md for the full data model; this file is
// the public surface: Encode, Decode, and the reusable Buffer.
package bitcode

import (
	"fmt"
	"reflect"

	"github.com/arloliu/bitcode/driver"
	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/options"
	"github.com/arloliu/bitcode/internal/pool"
)

// Union2, Union3, and Char are aliased from the driver package rather than
// redefined here so that driver's reflection-based type recognition
// (isUnion2/isUnion3, the Char wrapper check) works directly against
// values built through these names, without bitcode and driver importing
// each other.
type (
	// Union2 is a closed, two-variant sum type: exactly one of V0, V1
	// holds the value Tag selects. Build one with NewUnion2A/NewUnion2B.
	Union2[A, B any] = driver.Union2[A, B]
	// Union3 generalizes Union2 to three variants.
	Union3[A, B, C any] = driver.Union3[A, B, C]
	// Char distinguishes a Unicode scalar value field from a plain
	// int32/rune field, which reflect cannot otherwise tell apart.
	Char = driver.Char
)

// NewUnion2A builds a Union2 selecting its first variant.
func NewUnion2A[A, B any](v A) Union2[A, B] { return driver.NewUnion2A[A, B](v) }

// NewUnion2B builds a Union2 selecting its second variant.
func NewUnion2B[A, B any](v B) Union2[A, B] { return driver.NewUnion2B[A, B](v) }

// NewUnion3A builds a Union3 selecting its first variant.
func NewUnion3A[A, B, C any](v A) Union3[A, B, C] { return driver.NewUnion3A[A, B, C](v) }

// NewUnion3B builds a Union3 selecting its second variant.
func NewUnion3B[A, B, C any](v B) Union3[A, B, C] { return driver.NewUnion3B[A, B, C](v) }

// NewUnion3C builds a Union3 selecting its third variant.
func NewUnion3C[A, B, C any](v C) Union3[A, B, C] { return driver.NewUnion3C[A, B, C](v) }

// Buffer is an opaque, reusable scratch object: it amortizes the byte
// buffer backing an encode call and the reflection-derived codec tree for
// each distinct type it is used with, across repeated Encode/Decode calls.
// It has no effect on the bytes produced. The zero value is not usable;
// use NewBuffer. A Buffer is not safe for concurrent use.
type Buffer struct {
	buf      *pool.ByteBuffer
	depthCap int
	plans    map[reflect.Type]*plan
}

type plan struct {
	enc any // encNode, held as `any` since driver's node types aren't exported
	dec any // decNode
}

// BufferOption configures a Buffer constructed via NewBuffer.
type BufferOption = options.Option[*Buffer]

// WithRecursionDepthCap overrides the recursion depth cap every boxed
// self-referential pointer occurrence enforces (default 128, per §6).
func WithRecursionDepthCap(cap int) BufferOption {
	return options.NoError(func(b *Buffer) {
		b.depthCap = cap
	})
}

// NewBuffer creates a Buffer ready for repeated Encode/Decode calls.
func NewBuffer(opts ...BufferOption) *Buffer {
	b := &Buffer{
		buf:   pool.GetDocumentBuffer(),
		plans: make(map[reflect.Type]*plan),
	}
	_ = options.Apply(b, opts...)

	return b
}

// Release returns the Buffer's backing byte buffer to the shared document
// pool and clears its type plans; the Buffer must not be used afterward.
func (b *Buffer) Release() {
	pool.PutDocumentBuffer(b.buf)
	b.buf = nil
	b.plans = nil
}

func planFor[T any](b *Buffer) (encNode, decNode, error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if p, ok := b.plans[rt]; ok {
		return p.enc.(encNode), p.dec.(decNode), nil
	}

	enc, dec, err := driver.Build(rt, b.depthCap)
	if err != nil {
		return nil, nil, fmt.Errorf("bitcode: %w", err)
	}
	b.plans[rt] = &plan{enc: enc, dec: dec}

	return enc, dec, nil
}

// encNode and decNode mirror driver's unexported interfaces structurally,
// so planFor can hold driver.Build's results without driver exporting its
// internal node types.
type encNode interface {
	Reserve(n int)
	Push(v reflect.Value, depth int)
	FinishInto(w *bitio.Writer)
}

type decNode interface {
	Populate(r *bitio.Reader, n int) error
	Assign(v reflect.Value, depth int) error
}

// EncodeInto serializes v using buf's amortized scratch state, returning a
// byte slice valid until the next call that reuses buf. Encode has no
// error return: every value reachable through T's static type has a
// well-defined encoding.
func EncodeInto[T any](buf *Buffer, v T) []byte {
	enc, _, err := planFor[T](buf)
	if err != nil {
		// driver.Build only fails for a type shape bitcode cannot
		// represent at all (e.g. a chan or func field); that is a
		// programmer error in the type passed to Encode, not a
		// decode-time data error, so it panics rather than adding an
		// error return to every Encode call.
		panic(err)
	}

	buf.buf.Reset()
	w := bitio.NewWriterWithBuffer(buf.buf)

	rv := reflect.ValueOf(&v).Elem()
	enc.Reserve(1)
	enc.Push(rv, 0)
	enc.FinishInto(w)

	finished := w.Finish()
	out := make([]byte, len(finished))
	copy(out, finished)

	return out
}

// DecodeFrom parses data into a T using buf's amortized scratch state.
func DecodeFrom[T any](buf *Buffer, data []byte) (T, error) {
	var zero T

	_, dec, err := planFor[T](buf)
	if err != nil {
		return zero, err
	}

	r := bitio.NewReader(data)
	if err := dec.Populate(r, 1); err != nil {
		return zero, err
	}

	var out T
	rv := reflect.ValueOf(&out).Elem()
	if err := dec.Assign(rv, 0); err != nil {
		return zero, err
	}
	if err := r.ExpectEOF(); err != nil {
		return zero, err
	}

	return out, nil
}

// Encode serializes v into a new byte slice, using a throwaway Buffer.
// Callers making repeated calls for the same type should construct one
// Buffer and call EncodeInto instead, to amortize allocations.
func Encode[T any](v T) []byte {
	return EncodeInto(NewBuffer(), v)
}

// Decode parses data into a value of type T, using a throwaway Buffer.
// Callers making repeated calls for the same type should construct one
// Buffer and call DecodeFrom instead, to amortize allocations.
func Decode[T any](data []byte) (T, error) {
	return DecodeFrom[T](NewBuffer(), data)
}
