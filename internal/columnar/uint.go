package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// uintValue is the set of unsigned integer kinds a UintColumn can carry.
type uintValue interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// widthFieldBits is the fixed width of the header field that stores a
// column's per-value bit width. 7 bits covers every width up to 64.
const widthFieldBits = 7

// UintColumn implements the bounded integer packing policy of §4.3 for
// unsigned columns: each value is stored as (v - lo) in
// w = ceil(log2(hi - lo + 1)) bits, where [lo, hi] is the range observed
// across every value pushed in this top-level encode call.
type UintColumn[T uintValue] struct {
	values      []T
	naturalBits int // natural width of T, used to size the header's lo field
}

// NewUintColumn creates a column for a T whose natural (unpacked) width is
// naturalBits bits (8, 16, 32, or 64).
func NewUintColumn[T uintValue](naturalBits int) *UintColumn[T] {
	return &UintColumn[T]{naturalBits: naturalBits}
}

func (c *UintColumn[T]) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]T, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *UintColumn[T]) EncodeValue(v *T) {
	c.values = append(c.values, *v)
}

// FinishInto writes the header (lo, width) followed by the packed body,
// then resets the column.
func (c *UintColumn[T]) FinishInto(w *bitio.Writer) {
	var lo, hi uint64
	if len(c.values) > 0 {
		lo, hi = uint64(c.values[0]), uint64(c.values[0])
		for _, v := range c.values[1:] {
			u := uint64(v)
			if u < lo {
				lo = u
			}
			if u > hi {
				hi = u
			}
		}
	}

	width := bitio.BitWidth(lo, hi)

	w.WriteBits(lo, c.naturalBits)
	w.WriteBits(uint64(width), widthFieldBits)
	for _, v := range c.values {
		w.WriteBits(uint64(v)-lo, width)
	}

	c.values = c.values[:0]
}

// UintDecoder parses, validates, and yields a UintColumn's values.
type UintDecoder[T uintValue] struct {
	naturalBits int
	values      []T
	pos         int
}

func NewUintDecoder[T uintValue](naturalBits int) *UintDecoder[T] {
	return &UintDecoder[T]{naturalBits: naturalBits}
}

// Populate reads the header, checks the body's bit-exact footprint against
// the remaining bits, then validates and materializes every value.
func (d *UintDecoder[T]) Populate(r *bitio.Reader, n int) error {
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
		return bcerr.Newf(bcerr.Invalid, "columnar.UintDecoder.Populate", "column width %d exceeds natural width %d", width, d.naturalBits)
	}

	if err := CheckFootprint(r, "columnar.UintDecoder.Populate", n*width); err != nil {
		return err
	}

	values := make([]T, n)
	for i := range n {
		off, err := r.ReadBits(width)
		if err != nil {
			return err
		}
		values[i] = T(lo + off)
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *UintDecoder[T]) DecodeInPlace(v *T) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.UintDecoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}
