package columnar

import (
	"math/bits"

	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// DiscriminantWidth returns ceil(log2(n)) bits per occurrence for a sum
// type with n variants: 0 bits when n == 1, per §4.4.
func DiscriminantWidth(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

// DiscriminantColumn packs each pushed variant tag (0 <= tag < n) in a
// fixed ceil(log2(n))-bit field. It is the encode side of the
// discriminant; DiscriminantDecoder implements VariantSelector.
type DiscriminantColumn struct {
	variants int
	values   []int
}

func NewDiscriminantColumn(variants int) *DiscriminantColumn {
	return &DiscriminantColumn{variants: variants}
}

func (c *DiscriminantColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]int, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *DiscriminantColumn) EncodeValue(tag *int) {
	c.values = append(c.values, *tag)
}

func (c *DiscriminantColumn) FinishInto(w *bitio.Writer) {
	width := DiscriminantWidth(c.variants)
	for _, tag := range c.values {
		w.WriteBits(uint64(tag), width)
	}
	c.values = c.values[:0]
}

// DiscriminantDecoder parses and validates a discriminant column,
// rejecting (invariant 2) any tag that is not less than the static variant
// count before any branch on it is taken.
type DiscriminantDecoder struct {
	variants int
	values   []int
	pos      int
}

func NewDiscriminantDecoder(variants int) *DiscriminantDecoder {
	return &DiscriminantDecoder{variants: variants}
}

func (d *DiscriminantDecoder) Populate(r *bitio.Reader, n int) error {
	width := DiscriminantWidth(d.variants)
	if err := CheckFootprint(r, "columnar.DiscriminantDecoder.Populate", n*width); err != nil {
		return err
	}

	values := make([]int, n)
	for i := range n {
		if width == 0 {
			values[i] = 0
			continue
		}

		tagU, err := r.ReadBits(width)
		if err != nil {
			return err
		}
		tag := int(tagU)
		if tag >= d.variants {
			return bcerr.Newf(bcerr.Invalid, "columnar.DiscriminantDecoder.Populate", "discriminant %d out of range for %d variants", tag, d.variants)
		}
		values[i] = tag
	}

	d.values = values
	d.pos = 0

	return nil
}

// Variant queries the validated discriminant at position i, implementing
// the VariantSelector capability on the decode side.
func (d *DiscriminantDecoder) Variant(i int) (int, error) {
	if i < 0 || i >= len(d.values) {
		return 0, bcerr.New(bcerr.Eof, "columnar.DiscriminantDecoder.Variant", "index out of populated range")
	}

	return d.values[i], nil
}

func (d *DiscriminantDecoder) DecodeInPlace(tag *int) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.DiscriminantDecoder.DecodeInPlace", "column exhausted")
	}
	*tag = d.values[d.pos]
	d.pos++

	return nil
}

// HintedDiscriminantColumn implements the variant-frequency hint from the
// last paragraph of §4.4: a closed, static two-tier prefix code. The
// hinted most-frequent variant gets a single 0 bit; every other variant
// gets a 1 bit followed by the standard ceil(log2(n-1))-bit index among
// the rest (in their original, hinted-variant-excluded order). Both sides
// derive the code from the same static hint, never from observed data.
type HintedDiscriminantColumn struct {
	variants int
	hint     int // the hinted most-frequent variant index
	values   []int
}

func NewHintedDiscriminantColumn(variants, hint int) *HintedDiscriminantColumn {
	return &HintedDiscriminantColumn{variants: variants, hint: hint}
}

func (c *HintedDiscriminantColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]int, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *HintedDiscriminantColumn) EncodeValue(tag *int) {
	c.values = append(c.values, *tag)
}

// restIndex maps a non-hinted variant tag to its index among the n-1
// remaining variants (tags below hint keep their value; tags above hint
// shift down by one).
func restIndex(tag, hint int) int {
	if tag < hint {
		return tag
	}

	return tag - 1
}

func restTag(idx, hint int) int {
	if idx < hint {
		return idx
	}

	return idx + 1
}

func (c *HintedDiscriminantColumn) FinishInto(w *bitio.Writer) {
	restWidth := DiscriminantWidth(c.variants - 1)
	for _, tag := range c.values {
		if tag == c.hint {
			w.WriteBit(0)
			continue
		}
		w.WriteBit(1)
		w.WriteBits(uint64(restIndex(tag, c.hint)), restWidth)
	}
	c.values = c.values[:0]
}

type HintedDiscriminantDecoder struct {
	variants int
	hint     int
	values   []int
	pos      int
}

func NewHintedDiscriminantDecoder(variants, hint int) *HintedDiscriminantDecoder {
	return &HintedDiscriminantDecoder{variants: variants, hint: hint}
}

func (d *HintedDiscriminantDecoder) Populate(r *bitio.Reader, n int) error {
	restWidth := DiscriminantWidth(d.variants - 1)

	values := make([]int, n)
	for i := range n {
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		if bit == 0 {
			values[i] = d.hint
			continue
		}

		if err := CheckFootprint(r, "columnar.HintedDiscriminantDecoder.Populate", restWidth); err != nil {
			return err
		}
		idxU, err := r.ReadBits(restWidth)
		if err != nil {
			return err
		}
		idx := int(idxU)
		if idx >= d.variants-1 {
			return bcerr.Newf(bcerr.Invalid, "columnar.HintedDiscriminantDecoder.Populate", "hinted discriminant index %d out of range", idx)
		}
		values[i] = restTag(idx, d.hint)
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *HintedDiscriminantDecoder) Variant(i int) (int, error) {
	if i < 0 || i >= len(d.values) {
		return 0, bcerr.New(bcerr.Eof, "columnar.HintedDiscriminantDecoder.Variant", "index out of populated range")
	}

	return d.values[i], nil
}

func (d *HintedDiscriminantDecoder) DecodeInPlace(tag *int) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.HintedDiscriminantDecoder.DecodeInPlace", "column exhausted")
	}
	*tag = d.values[d.pos]
	d.pos++

	return nil
}
