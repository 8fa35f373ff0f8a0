package driver

import (
	"reflect"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/columnar"
)

// Char distinguishes a Unicode scalar value field from a plain int32/rune
// field. reflect cannot tell a rune apart from an int32 (rune is only a
// type alias), so without a distinct named type every such field would
// route through the generic bounded-integer column instead of CharColumn
// and lose the data model's dedicated Char semantics (scalar-value
// validation on decode).
type Char rune

var charType = reflect.TypeOf(Char(0))

// naturalBitsForKind returns the bit width of an integer reflect.Kind, used
// to size a column's lo/width header fields regardless of which concrete
// Go integer type the field actually is.
func naturalBitsForKind(k reflect.Kind) int {
	switch k {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	default:
		return 64
	}
}

// boolEncNode/boolDecNode bridge BoolColumn/BoolDecoder to reflect.

type boolEncNode struct{ col columnar.BoolColumn }

func (n *boolEncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *boolEncNode) Push(v reflect.Value, _ int) {
	b := v.Bool()
	n.col.EncodeValue(&b)
}
func (n *boolEncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type boolDecNode struct{ dec columnar.BoolDecoder }

func (n *boolDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *boolDecNode) Assign(v reflect.Value, _ int) error {
	var b bool
	if err := n.dec.DecodeInPlace(&b); err != nil {
		return err
	}
	v.SetBool(b)

	return nil
}
func (n *boolDecNode) minBits() int { return 1 }

// uintEncNode/uintDecNode bridge UintColumn[uint64]/UintDecoder[uint64];
// every unsigned integer kind is folded to uint64 for the push/assign
// boundary, the column header's naturalBits field still reflects the
// field's real width.

type uintEncNode struct{ col *columnar.UintColumn[uint64] }

func newUintEncNode(naturalBits int) *uintEncNode {
	return &uintEncNode{col: columnar.NewUintColumn[uint64](naturalBits)}
}
func (n *uintEncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *uintEncNode) Push(v reflect.Value, _ int) {
	u := v.Uint()
	n.col.EncodeValue(&u)
}
func (n *uintEncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type uintDecNode struct{ dec *columnar.UintDecoder[uint64] }

func newUintDecNode(naturalBits int) *uintDecNode {
	return &uintDecNode{dec: columnar.NewUintDecoder[uint64](naturalBits)}
}
func (n *uintDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *uintDecNode) Assign(v reflect.Value, _ int) error {
	var u uint64
	if err := n.dec.DecodeInPlace(&u); err != nil {
		return err
	}
	v.SetUint(u)

	return nil
}
func (n *uintDecNode) minBits() int { return 0 }

// intEncNode/intDecNode mirror uintEncNode/uintDecNode for signed kinds.

type intEncNode struct{ col *columnar.IntColumn[int64] }

func newIntEncNode(naturalBits int) *intEncNode {
	return &intEncNode{col: columnar.NewIntColumn[int64](naturalBits)}
}
func (n *intEncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *intEncNode) Push(v reflect.Value, _ int) {
	i := v.Int()
	n.col.EncodeValue(&i)
}
func (n *intEncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type intDecNode struct{ dec *columnar.IntDecoder[int64] }

func newIntDecNode(naturalBits int) *intDecNode {
	return &intDecNode{dec: columnar.NewIntDecoder[int64](naturalBits)}
}
func (n *intDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *intDecNode) Assign(v reflect.Value, _ int) error {
	var i int64
	if err := n.dec.DecodeInPlace(&i); err != nil {
		return err
	}
	v.SetInt(i)

	return nil
}
func (n *intDecNode) minBits() int { return 0 }

// float64EncNode/DecNode and float32EncNode/DecNode bridge the Float
// columns directly, since their bit pattern conversion is width-specific.

type float64EncNode struct{ col columnar.Float64Column }

func (n *float64EncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *float64EncNode) Push(v reflect.Value, _ int) {
	f := v.Float()
	n.col.EncodeValue(&f)
}
func (n *float64EncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type float64DecNode struct{ dec columnar.Float64Decoder }

func (n *float64DecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *float64DecNode) Assign(v reflect.Value, _ int) error {
	var f float64
	if err := n.dec.DecodeInPlace(&f); err != nil {
		return err
	}
	v.SetFloat(f)

	return nil
}
func (n *float64DecNode) minBits() int { return 64 }

type float32EncNode struct{ col columnar.Float32Column }

func (n *float32EncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *float32EncNode) Push(v reflect.Value, _ int) {
	f := float32(v.Float())
	n.col.EncodeValue(&f)
}
func (n *float32EncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type float32DecNode struct{ dec columnar.Float32Decoder }

func (n *float32DecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *float32DecNode) Assign(v reflect.Value, _ int) error {
	var f float32
	if err := n.dec.DecodeInPlace(&f); err != nil {
		return err
	}
	v.SetFloat(float64(f))

	return nil
}
func (n *float32DecNode) minBits() int { return 32 }

// stringEncNode/DecNode bridge the text-string codec.

type stringEncNode struct{ enc *columnar.StringEncoder }

func newStringEncNode() *stringEncNode { return &stringEncNode{enc: columnar.NewStringEncoder()} }
func (n *stringEncNode) Reserve(c int) { n.enc.Reserve(c) }
func (n *stringEncNode) Push(v reflect.Value, _ int) {
	s := v.String()
	n.enc.EncodeValue(&s)
}
func (n *stringEncNode) FinishInto(w *bitio.Writer) { n.enc.FinishInto(w) }

type stringDecNode struct{ dec *columnar.StringDecoder }

func newStringDecNode() *stringDecNode { return &stringDecNode{dec: columnar.NewStringDecoder()} }
func (n *stringDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *stringDecNode) Assign(v reflect.Value, _ int) error {
	var s string
	if err := n.dec.DecodeInPlace(&s); err != nil {
		return err
	}
	v.SetString(s)

	return nil
}

// byteSliceEncNode/DecNode bridge the byte-string codec, used for []byte
// fields (as opposed to a generic sequence of uint8, whose element column
// would carry its own lo/width header and width-packed values instead of
// plain 8-bit bytes).

type byteSliceEncNode struct{ enc *columnar.ByteStringEncoder }

func newByteSliceEncNode() *byteSliceEncNode {
	return &byteSliceEncNode{enc: columnar.NewByteStringEncoder()}
}
func (n *byteSliceEncNode) Reserve(c int) { n.enc.Reserve(c) }
func (n *byteSliceEncNode) Push(v reflect.Value, _ int) {
	b := v.Bytes()
	n.enc.EncodeValue(&b)
}
func (n *byteSliceEncNode) FinishInto(w *bitio.Writer) { n.enc.FinishInto(w) }

type byteSliceDecNode struct{ dec *columnar.ByteStringDecoder }

func newByteSliceDecNode() *byteSliceDecNode {
	return &byteSliceDecNode{dec: columnar.NewByteStringDecoder()}
}
func (n *byteSliceDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *byteSliceDecNode) Assign(v reflect.Value, _ int) error {
	var b []byte
	if err := n.dec.DecodeInPlace(&b); err != nil {
		return err
	}
	v.SetBytes(b)

	return nil
}

// charEncNode/DecNode bridge CharColumn/CharDecoder, used for the distinct
// Char wrapper type (plain int32/rune fields are treated as bounded signed
// integers instead, since reflect cannot distinguish a rune from an int32).

type charEncNode struct{ col *columnar.CharColumn }

func newCharEncNode() *charEncNode { return &charEncNode{col: columnar.NewCharColumn()} }
func (n *charEncNode) Reserve(c int) { n.col.Reserve(c) }
func (n *charEncNode) Push(v reflect.Value, _ int) {
	r := rune(v.Int())
	n.col.EncodeValue(&r)
}
func (n *charEncNode) FinishInto(w *bitio.Writer) { n.col.FinishInto(w) }

type charDecNode struct{ dec *columnar.CharDecoder }

func newCharDecNode() *charDecNode { return &charDecNode{dec: columnar.NewCharDecoder()} }
func (n *charDecNode) Populate(r *bitio.Reader, c int) error { return n.dec.Populate(r, c) }
func (n *charDecNode) Assign(v reflect.Value, _ int) error {
	var r rune
	if err := n.dec.DecodeInPlace(&r); err != nil {
		return err
	}
	v.SetInt(int64(r))

	return nil
}
func (n *charDecNode) minBits() int { return 0 }

// minBitsHint is implemented by leaf decNodes whose per-value wire cost has
// a known floor, used to derive a conservative upper bound on a declared
// sequence/map length from the bits actually remaining in the stream.
// Composite decNodes (product, sum, sequence, map, optional, self-ref)
// don't implement it; minBitsOf falls back to 0 for them, so only the
// absolute MaxSequenceLength cap bounds their element counts.
type minBitsHint interface {
	minBits() int
}

func minBitsOf(n decNode) int {
	if h, ok := n.(minBitsHint); ok {
		return h.minBits()
	}

	return 0
}
