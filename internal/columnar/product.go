package columnar

import "github.com/arloliu/bitcode/internal/bitio"

// FieldEncoder is the bookkeeping surface a composite (product, sum,
// sequence) needs from a child column or nested composite: pre-size for an
// upcoming batch of pushes, then flush the accumulated column(s) to the
// writer in one contiguous run. The actual per-occurrence EncodeValue
// pushes happen directly against the concrete leaf column, driven by the
// struct/slice walk that knows each field's Go type; FieldEncoder only
// captures the part every composite needs to sequence uniformly.
type FieldEncoder interface {
	Reserve(n int)
	FinishInto(w *bitio.Writer)
}

// FieldDecoder is FieldEncoder's decode-side counterpart: parse and
// front-load-validate a child's column body against n occurrences.
type FieldDecoder interface {
	Populate(r *bitio.Reader, n int) error
}

// ProductEncoder sequences a struct's field columns one after another, in
// declaration order, each field's entire column (spanning every occurrence
// of the product in the current encode) written contiguously before the
// next field's column starts. This is the struct-of-arrays transpose: the
// per-occurrence EncodeValue pushes against each field happen directly
// against that field's own encoder, outside of ProductEncoder.
type ProductEncoder struct {
	fields []FieldEncoder
}

// NewProductEncoder builds a product over fields in declaration order.
func NewProductEncoder(fields ...FieldEncoder) *ProductEncoder {
	return &ProductEncoder{fields: fields}
}

func (p *ProductEncoder) Reserve(n int) {
	for _, f := range p.fields {
		f.Reserve(n)
	}
}

func (p *ProductEncoder) FinishInto(w *bitio.Writer) {
	for _, f := range p.fields {
		f.FinishInto(w)
	}
}

// ProductDecoder mirrors ProductEncoder: each field's Populate is called in
// turn against the same occurrence count n, since every field of a product
// occurs exactly once per occurrence of the product itself.
type ProductDecoder struct {
	fields []FieldDecoder
}

func NewProductDecoder(fields ...FieldDecoder) *ProductDecoder {
	return &ProductDecoder{fields: fields}
}

func (p *ProductDecoder) Populate(r *bitio.Reader, n int) error {
	for _, f := range p.fields {
		if err := f.Populate(r, n); err != nil {
			return err
		}
	}

	return nil
}
