package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// maxUnicodeScalar is the highest valid Unicode scalar value.
const maxUnicodeScalar = 0x10FFFF

// surrogateLo and surrogateHi bound the UTF-16 surrogate range, which is
// not a valid Unicode scalar value.
const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

func isValidScalar(v uint32) bool {
	return v <= maxUnicodeScalar && !(v >= surrogateLo && v <= surrogateHi)
}

// CharColumn encodes Unicode scalar values (runes) as a width-packed
// unsigned column, same policy as UintColumn, carried in a uint32.
type CharColumn struct {
	inner *UintColumn[uint32]
}

func NewCharColumn() *CharColumn {
	return &CharColumn{inner: NewUintColumn[uint32](32)}
}

func (c *CharColumn) Reserve(n int) { c.inner.Reserve(n) }

func (c *CharColumn) EncodeValue(v *rune) {
	u := uint32(*v)
	c.inner.EncodeValue(&u)
}

func (c *CharColumn) FinishInto(w *bitio.Writer) { c.inner.FinishInto(w) }

// CharDecoder parses a char column and validates every decoded value is a
// legal Unicode scalar value before it is ever surfaced (invariant 3).
type CharDecoder struct {
	inner *UintDecoder[uint32]
}

func NewCharDecoder() *CharDecoder {
	return &CharDecoder{inner: NewUintDecoder[uint32](32)}
}

func (d *CharDecoder) Populate(r *bitio.Reader, n int) error {
	if err := d.inner.Populate(r, n); err != nil {
		return err
	}

	for _, v := range d.inner.values {
		if !isValidScalar(v) {
			return bcerr.Newf(bcerr.Invalid, "columnar.CharDecoder.Populate", "0x%X is not a valid Unicode scalar value", v)
		}
	}

	return nil
}

func (d *CharDecoder) DecodeInPlace(v *rune) error {
	var u uint32
	if err := d.inner.DecodeInPlace(&u); err != nil {
		return err
	}
	*v = rune(u)

	return nil
}
