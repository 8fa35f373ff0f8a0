package driver

import (
	"reflect"
	"strings"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/columnar"
)

// Union2 is a closed, two-variant sum type: exactly one of V0, V1 holds the
// value Tag selects (0 or 1), the other field is its zero value. It exists
// so a Go program can express the sum composite from the data model
// without hand-rolling a discriminated struct for every pair of payload
// types the driver then has to detect by convention; NewUnion2A/NewUnion2B
// are the only way to build one with Tag and the payload kept consistent.
type Union2[A, B any] struct {
	Tag int
	V0  A
	V1  B
}

// NewUnion2A builds a Union2 selecting its first variant.
func NewUnion2A[A, B any](v A) Union2[A, B] {
	return Union2[A, B]{Tag: 0, V0: v}
}

// NewUnion2B builds a Union2 selecting its second variant.
func NewUnion2B[A, B any](v B) Union2[A, B] {
	return Union2[A, B]{Tag: 1, V1: v}
}

// Union3 is Union2 generalized to three variants.
type Union3[A, B, C any] struct {
	Tag int
	V0  A
	V1  B
	V2  C
}

func NewUnion3A[A, B, C any](v A) Union3[A, B, C] {
	return Union3[A, B, C]{Tag: 0, V0: v}
}

func NewUnion3B[A, B, C any](v B) Union3[A, B, C] {
	return Union3[A, B, C]{Tag: 1, V1: v}
}

func NewUnion3C[A, B, C any](v C) Union3[A, B, C] {
	return Union3[A, B, C]{Tag: 2, V2: v}
}

var (
	union2PkgPath = reflect.TypeOf(Union2[struct{}, struct{}]{}).PkgPath()
	union3PkgPath = reflect.TypeOf(Union3[struct{}, struct{}, struct{}]{}).PkgPath()
)

// isUnion2/isUnion3 recognize a generic-instantiated Union2[A, B]/
// Union3[A, B, C] type by package path plus the instantiated type name's
// "Union2["/"Union3[" prefix, which Go's reflect includes for generic
// types since the type parameter list is part of the instantiated name.
func isUnion2(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct && rt.PkgPath() == union2PkgPath && strings.HasPrefix(rt.Name(), "Union2[")
}

func isUnion3(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct && rt.PkgPath() == union3PkgPath && strings.HasPrefix(rt.Name(), "Union3[")
}

// sumEncNode/sumDecNode drive a Union2/Union3 field over
// columnar.SumEncoder/Decoder: the Tag field selects which of the variant
// child nodes receives the pushed value, the others receiving no push at
// all for that occurrence (sum variant columns are dense, not sparse).
// discEncoder is the narrow surface sumEncNode needs from a discriminant
// column (DiscriminantColumn or HintedDiscriminantColumn) to push a tag
// value directly, independent of the columnar.FieldEncoder sequencing
// methods SumEncoder itself drives.
type discEncoder interface {
	columnar.FieldEncoder
	EncodeValue(tag *int)
}

type sumEncNode struct {
	sum         *columnar.SumEncoder
	disc        discEncoder
	variants    []encNode
	variantIdx  []int // struct field index of each variant (V0, V1, ...)
	tagFieldIdx int
}

func newSumEncNode(disc discEncoder, variants []encNode, variantIdx []int, tagFieldIdx int) *sumEncNode {
	return &sumEncNode{
		sum:         columnar.NewSumEncoder(disc, fieldEncoders(variants)...),
		disc:        disc,
		variants:    variants,
		variantIdx:  variantIdx,
		tagFieldIdx: tagFieldIdx,
	}
}

func (n *sumEncNode) Reserve(c int) { n.sum.Reserve(c) }
func (n *sumEncNode) Push(v reflect.Value, depth int) {
	tag := int(v.Field(n.tagFieldIdx).Int())
	n.disc.EncodeValue(&tag)
	child := n.variants[tag]
	child.Reserve(1)
	child.Push(v.Field(n.variantIdx[tag]), depth)
}
func (n *sumEncNode) FinishInto(w *bitio.Writer) { n.sum.FinishInto(w) }

type sumDecNode struct {
	sum         *columnar.SumDecoder
	variants    []decNode
	variantIdx  []int
	tagFieldIdx int
	pos         int
}

func newSumDecNode(discriminant columnar.VariantDecoder, variants []decNode, variantIdx []int, tagFieldIdx int) *sumDecNode {
	return &sumDecNode{
		sum:         columnar.NewSumDecoder(discriminant, fieldDecoders(variants)...),
		variants:    variants,
		variantIdx:  variantIdx,
		tagFieldIdx: tagFieldIdx,
	}
}

func (n *sumDecNode) Populate(r *bitio.Reader, c int) error {
	n.pos = 0

	return n.sum.Populate(r, c)
}

func (n *sumDecNode) Assign(v reflect.Value, depth int) error {
	tag, err := n.sum.Variant(n.pos)
	n.pos++
	if err != nil {
		return err
	}

	v.Field(n.tagFieldIdx).SetInt(int64(tag))

	return n.variants[tag].Assign(v.Field(n.variantIdx[tag]), depth)
}
