package columnar

import (
	"math"

	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// Float64Column stores each value's raw IEEE-754 bit pattern at its fixed
// natural width (64 bits); floats get no range-based compression (§3's
// "Float (32/64): bit pattern: fixed natural width").
type Float64Column struct {
	values []float64
}

func (c *Float64Column) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]float64, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *Float64Column) EncodeValue(v *float64) {
	c.values = append(c.values, *v)
}

func (c *Float64Column) FinishInto(w *bitio.Writer) {
	for _, v := range c.values {
		w.WriteBits(math.Float64bits(v), 64)
	}
	c.values = c.values[:0]
}

type Float64Decoder struct {
	values []float64
	pos    int
}

func (d *Float64Decoder) Populate(r *bitio.Reader, n int) error {
	if err := CheckFootprint(r, "columnar.Float64Decoder.Populate", n*64); err != nil {
		return err
	}

	values := make([]float64, n)
	for i := range n {
		bits, err := r.ReadBits(64)
		if err != nil {
			return err
		}
		values[i] = math.Float64frombits(bits)
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *Float64Decoder) DecodeInPlace(v *float64) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.Float64Decoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}

// Float32Column is Float64Column's 32-bit natural-width counterpart.
type Float32Column struct {
	values []float32
}

func (c *Float32Column) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]float32, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *Float32Column) EncodeValue(v *float32) {
	c.values = append(c.values, *v)
}

func (c *Float32Column) FinishInto(w *bitio.Writer) {
	for _, v := range c.values {
		w.WriteBits(uint64(math.Float32bits(v)), 32)
	}
	c.values = c.values[:0]
}

type Float32Decoder struct {
	values []float32
	pos    int
}

func (d *Float32Decoder) Populate(r *bitio.Reader, n int) error {
	if err := CheckFootprint(r, "columnar.Float32Decoder.Populate", n*32); err != nil {
		return err
	}

	values := make([]float32, n)
	for i := range n {
		bits, err := r.ReadBits(32)
		if err != nil {
			return err
		}
		values[i] = math.Float32frombits(uint32(bits))
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *Float32Decoder) DecodeInPlace(v *float32) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.Float32Decoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}
