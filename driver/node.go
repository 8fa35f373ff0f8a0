// Package driver assembles a composite column codec for a concrete Go type
// via light runtime reflection, once per type per bitcode.Buffer. It
// is the runtime stand-in for the compile-time derive macro the core
// deliberately excludes (see the design notes on code generation): walk a
// reflect.Type once, build a tree of encNode/decNode values over the
// primitive and composite codecs in internal/columnar, then drive a single
// pre-order push (encode) or populate-then-assign (decode) pass over the
// actual Go value.
//
// reflect never leaks below this package: internal/columnar and encoding
// know nothing about it, and the root bitcode package only ever calls
// Build once per type and then Push/FinishInto or Populate/Assign.
package driver

import (
	"reflect"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/columnar"
)

// encNode is the write side of one position in the type tree: a field, a
// slice element, a map key or value, a sum variant's payload, or the
// top-level value itself. Its Reserve/FinishInto methods are exactly
// columnar.FieldEncoder's, so an encNode can be handed directly to
// columnar's composite constructors (NewProductEncoder, NewSumEncoder,
// ...) wherever they expect a child FieldEncoder.
type encNode interface {
	Reserve(n int)
	// Push encodes one occurrence of this node's Go value, reachable from
	// v. depth counts how many self-referential pointer boxes have been
	// opened to reach this point; only the self-reference node itself
	// inspects it.
	Push(v reflect.Value, depth int)
	FinishInto(w *bitio.Writer)
}

// decNode is encNode's read side. Its Populate method is exactly
// columnar.FieldDecoder's.
type decNode interface {
	Populate(r *bitio.Reader, n int) error
	// Assign pops the next occurrence's value (in the same order Populate
	// parsed it) and writes it into v, which must be addressable and
	// settable.
	Assign(v reflect.Value, depth int) error
}

// fieldEncoders adapts a slice of encNode to the []columnar.FieldEncoder
// shape the composite constructors take.
func fieldEncoders(nodes []encNode) []columnar.FieldEncoder {
	out := make([]columnar.FieldEncoder, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}

	return out
}

func fieldDecoders(nodes []decNode) []columnar.FieldDecoder {
	out := make([]columnar.FieldDecoder, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}

	return out
}

// encPlaceholder and decPlaceholder tie the knot for a self-referential
// type: registered before its element type is built, resolved to the real
// node once that build returns, so an inner reference to the same type
// (found while still building it) can hold a forward reference instead of
// recursing at build time.
type encPlaceholder struct {
	resolved encNode
}

type decPlaceholder struct {
	resolved decNode
}

// buildCtx carries the in-progress type set used for cycle detection and
// the configured self-reference depth cap across one Build call's recursive
// descent.
type buildCtx struct {
	encInProgress map[reflect.Type]*encPlaceholder
	decInProgress map[reflect.Type]*decPlaceholder
	depthCap      int
}

func newBuildCtx(depthCap int) *buildCtx {
	return &buildCtx{
		encInProgress: make(map[reflect.Type]*encPlaceholder),
		decInProgress: make(map[reflect.Type]*decPlaceholder),
		depthCap:      depthCap,
	}
}
