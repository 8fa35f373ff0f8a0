package driver

import (
	"reflect"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/columnar"
)

// productEncNode/productDecNode drive a struct's fields in declaration
// order over columnar.ProductEncoder/Decoder. fieldIdx[i] is the struct
// field index children[i] reads from/writes to.
type productEncNode struct {
	prod     *columnar.ProductEncoder
	children []encNode
	fieldIdx []int
}

func newProductEncNode(children []encNode, fieldIdx []int) *productEncNode {
	return &productEncNode{
		prod:     columnar.NewProductEncoder(fieldEncoders(children)...),
		children: children,
		fieldIdx: fieldIdx,
	}
}

func (n *productEncNode) Reserve(c int) { n.prod.Reserve(c) }
func (n *productEncNode) Push(v reflect.Value, depth int) {
	for i, child := range n.children {
		child.Push(v.Field(n.fieldIdx[i]), depth)
	}
}
func (n *productEncNode) FinishInto(w *bitio.Writer) { n.prod.FinishInto(w) }

type productDecNode struct {
	prod     *columnar.ProductDecoder
	children []decNode
	fieldIdx []int
}

func newProductDecNode(children []decNode, fieldIdx []int) *productDecNode {
	return &productDecNode{
		prod:     columnar.NewProductDecoder(fieldDecoders(children)...),
		children: children,
		fieldIdx: fieldIdx,
	}
}

func (n *productDecNode) Populate(r *bitio.Reader, c int) error { return n.prod.Populate(r, c) }
func (n *productDecNode) Assign(v reflect.Value, depth int) error {
	for i, child := range n.children {
		if err := child.Assign(v.Field(n.fieldIdx[i]), depth); err != nil {
			return err
		}
	}

	return nil
}

// sequenceEncNode/sequenceDecNode drive a slice field over
// columnar.SequenceEncoder/Decoder, flattening every occurrence's elements
// into the element child node in order.
type sequenceEncNode struct {
	seq     *columnar.SequenceEncoder
	element encNode
}

func newSequenceEncNode(element encNode) *sequenceEncNode {
	return &sequenceEncNode{seq: columnar.NewSequenceEncoder(element), element: element}
}

func (n *sequenceEncNode) Reserve(c int) { n.seq.Reserve(c) }
func (n *sequenceEncNode) Push(v reflect.Value, depth int) {
	ln := v.Len()
	n.seq.EncodeLen(ln)
	n.element.Reserve(ln)
	for i := range ln {
		n.element.Push(v.Index(i), depth)
	}
}
func (n *sequenceEncNode) FinishInto(w *bitio.Writer) { n.seq.FinishInto(w) }

type sequenceDecNode struct {
	dec               *columnar.SequenceDecoder
	element           decNode
	minBitsPerElement int
	lengths           []int
	pos               int
}

func newSequenceDecNode(element decNode) *sequenceDecNode {
	return &sequenceDecNode{
		dec:               columnar.NewSequenceDecoder(element),
		element:           element,
		minBitsPerElement: minBitsOf(element),
	}
}

func (n *sequenceDecNode) Populate(r *bitio.Reader, c int) error {
	lengths, err := n.dec.Populate(r, c, n.minBitsPerElement)
	if err != nil {
		return err
	}
	n.lengths = lengths
	n.pos = 0

	return nil
}

func (n *sequenceDecNode) Assign(v reflect.Value, depth int) error {
	ln := n.lengths[n.pos]
	n.pos++

	s := reflect.MakeSlice(v.Type(), ln, ln)
	for i := range ln {
		if err := n.element.Assign(s.Index(i), depth); err != nil {
			return err
		}
	}
	v.Set(s)

	return nil
}

// optionalEncNode/optionalDecNode drive a non-cyclic pointer field over
// columnar.OptionalEncoder/Decoder. Self-referential pointers use
// selfRefEncNode/selfRefDecNode instead, since their element count isn't
// known until the presence bits that determine recursion depth are read.
type optionalEncNode struct {
	opt  *columnar.OptionalEncoder
	elem encNode
}

func newOptionalEncNode(elem encNode) *optionalEncNode {
	return &optionalEncNode{opt: columnar.NewOptionalEncoder(elem), elem: elem}
}

func (n *optionalEncNode) Reserve(c int) { n.opt.Reserve(c) }
func (n *optionalEncNode) Push(v reflect.Value, depth int) {
	present := !v.IsNil()
	n.opt.EncodeValue(present)
	if present {
		n.elem.Reserve(1)
		n.elem.Push(v.Elem(), depth)
	}
}
func (n *optionalEncNode) FinishInto(w *bitio.Writer) { n.opt.FinishInto(w) }

type optionalDecNode struct {
	dec  *columnar.OptionalDecoder
	elem decNode
	pos  int
}

func newOptionalDecNode(elem decNode) *optionalDecNode {
	return &optionalDecNode{dec: columnar.NewOptionalDecoder(elem), elem: elem}
}

func (n *optionalDecNode) Populate(r *bitio.Reader, c int) error {
	n.pos = 0

	return n.dec.Populate(r, c)
}

func (n *optionalDecNode) Assign(v reflect.Value, depth int) error {
	present, err := n.dec.Present(n.pos)
	n.pos++
	if err != nil {
		return err
	}
	if !present {
		v.Set(reflect.Zero(v.Type()))

		return nil
	}

	ptr := reflect.New(v.Type().Elem())
	if err := n.elem.Assign(ptr.Elem(), depth); err != nil {
		return err
	}
	v.Set(ptr)

	return nil
}

// mapEncNode/mapDecNode drive a map field over columnar.MapEncoder/Decoder,
// flattening every occurrence's entries into the key/value child nodes in
// iteration order. Map iteration order is randomized by Go itself, so two
// encodes of the same map value are not guaranteed to produce the same
// bytes; decode never re-sorts, matching the wrapped codec's documented
// no-canonical-ordering behavior.
type mapEncNode struct {
	enc   *columnar.MapEncoder
	key   encNode
	value encNode
}

func newMapEncNode(key, value encNode) *mapEncNode {
	return &mapEncNode{enc: columnar.NewMapEncoder(key, value), key: key, value: value}
}

func (n *mapEncNode) Reserve(c int) { n.enc.Reserve(c) }
func (n *mapEncNode) Push(v reflect.Value, depth int) {
	ln := v.Len()
	n.enc.EncodeLen(ln)
	n.key.Reserve(ln)
	n.value.Reserve(ln)

	iter := v.MapRange()
	for iter.Next() {
		n.key.Push(iter.Key(), depth)
		n.value.Push(iter.Value(), depth)
	}
}
func (n *mapEncNode) FinishInto(w *bitio.Writer) { n.enc.FinishInto(w) }

type mapDecNode struct {
	dec             *columnar.MapDecoder
	key             decNode
	value           decNode
	minBitsPerEntry int
	lengths         []int
	pos             int
}

func newMapDecNode(key, value decNode) *mapDecNode {
	minBits := minBitsOf(key) + minBitsOf(value)

	return &mapDecNode{dec: columnar.NewMapDecoder(key, value), key: key, value: value, minBitsPerEntry: minBits}
}

func (n *mapDecNode) Populate(r *bitio.Reader, c int) error {
	lengths, err := n.dec.Populate(r, c, n.minBitsPerEntry)
	if err != nil {
		return err
	}
	n.lengths = lengths
	n.pos = 0

	return nil
}

func (n *mapDecNode) Assign(v reflect.Value, depth int) error {
	ln := n.lengths[n.pos]
	n.pos++

	kt, vt := v.Type().Key(), v.Type().Elem()
	m := reflect.MakeMapWithSize(v.Type(), ln)
	for range ln {
		kv := reflect.New(kt).Elem()
		if err := n.key.Assign(kv, depth); err != nil {
			return err
		}
		vv := reflect.New(vt).Elem()
		if err := n.value.Assign(vv, depth); err != nil {
			return err
		}
		m.SetMapIndex(kv, vv)
	}
	v.Set(m)

	return nil
}
