package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// BoolColumn accumulates bool values pushed during a single pre-order
// encode pass and finalizes them as a 1-bit-per-value packed column, per
// the Bool row's "1 bit packed" width policy.
type BoolColumn struct {
	values []bool
}

// Reserve pre-sizes the backing slice for n upcoming pushes.
func (c *BoolColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]bool, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

// EncodeValue pushes one value onto the column.
func (c *BoolColumn) EncodeValue(v *bool) {
	c.values = append(c.values, *v)
}

// FinishInto packs every pushed value as a single bit and resets the column
// so it can be reused for another top-level encode.
func (c *BoolColumn) FinishInto(w *bitio.Writer) {
	for _, v := range c.values {
		if v {
			w.WriteBit(1)
		} else {
			w.WriteBit(0)
		}
	}
	c.values = c.values[:0]
}

// BoolDecoder parses, front-loaded-validates, and yields a bool column.
type BoolDecoder struct {
	values []bool
	pos    int
}

// Populate reads n packed bits, checking the footprint against the
// remaining bit budget before allocating the validated value slice.
func (d *BoolDecoder) Populate(r *bitio.Reader, n int) error {
	if err := CheckFootprint(r, "columnar.BoolDecoder.Populate", n); err != nil {
		return err
	}

	values := make([]bool, n)
	for i := range n {
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		values[i] = bit != 0
	}

	d.values = values
	d.pos = 0

	return nil
}

// DecodeInPlace pops the next value from the populated column.
func (d *BoolDecoder) DecodeInPlace(v *bool) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.BoolDecoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}
