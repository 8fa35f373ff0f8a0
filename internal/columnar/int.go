package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// intValue is the set of signed integer kinds an IntColumn can carry.
type intValue interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// IntColumn implements §4.3's signed-integer policy: zigzag-fold each value
// to an unsigned domain, then apply the same bounded-range packing as
// UintColumn.
type IntColumn[T intValue] struct {
	values      []T
	naturalBits int
}

func NewIntColumn[T intValue](naturalBits int) *IntColumn[T] {
	return &IntColumn[T]{naturalBits: naturalBits}
}

func (c *IntColumn[T]) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]T, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *IntColumn[T]) EncodeValue(v *T) {
	c.values = append(c.values, *v)
}

func (c *IntColumn[T]) FinishInto(w *bitio.Writer) {
	folded := make([]uint64, len(c.values))
	var lo, hi uint64
	for i, v := range c.values {
		u := bitio.ZigZagEncode(int64(v))
		folded[i] = u
		if i == 0 || u < lo {
			lo = u
		}
		if i == 0 || u > hi {
			hi = u
		}
	}

	width := bitio.BitWidth(lo, hi)

	w.WriteBits(lo, c.naturalBits)
	w.WriteBits(uint64(width), widthFieldBits)
	for _, u := range folded {
		w.WriteBits(u-lo, width)
	}

	c.values = c.values[:0]
}

// IntDecoder parses, validates, and yields an IntColumn's values.
type IntDecoder[T intValue] struct {
	naturalBits int
	values      []T
	pos         int
}

func NewIntDecoder[T intValue](naturalBits int) *IntDecoder[T] {
	return &IntDecoder[T]{naturalBits: naturalBits}
}

func (d *IntDecoder[T]) Populate(r *bitio.Reader, n int) error {
	lo, err := r.ReadBits(d.naturalBits)
	if err != nil {
		return err
	}
	widthU, err := r.ReadBits(widthFieldBits)
	if err != nil {
		return err
	}
	width := int(widthU)
	if width > d.naturalBits {
		return bcerr.Newf(bcerr.Invalid, "columnar.IntDecoder.Populate", "column width %d exceeds natural width %d", width, d.naturalBits)
	}

	if err := CheckFootprint(r, "columnar.IntDecoder.Populate", n*width); err != nil {
		return err
	}

	values := make([]T, n)
	for i := range n {
		off, err := r.ReadBits(width)
		if err != nil {
			return err
		}
		values[i] = T(bitio.ZigZagDecode(lo + off))
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *IntDecoder[T]) DecodeInPlace(v *T) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.IntDecoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}
