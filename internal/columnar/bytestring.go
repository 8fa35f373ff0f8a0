package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// byteColumn stores each byte at its fixed natural width (8 bits) with no
// per-column header, per §4.7's "packed byte column at 8-bit width" — the
// same fixed-natural-width policy float.go uses for floats, rather than
// UintColumn's bounded-range packing (which would add a lo/width header
// per column and repack each byte below 8 bits, violating the spec's
// literal byte layout).
type byteColumn struct {
	values []byte
}

func (c *byteColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]byte, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *byteColumn) EncodeValue(v *byte) {
	c.values = append(c.values, *v)
}

func (c *byteColumn) FinishInto(w *bitio.Writer) {
	w.WriteByteAligned(c.values)
	c.values = c.values[:0]
}

type byteDecoder struct {
	values []byte
	pos    int
}

func (d *byteDecoder) Populate(r *bitio.Reader, n int) error {
	if err := CheckFootprint(r, "columnar.byteDecoder.Populate", n*8); err != nil {
		return err
	}

	values, err := r.ReadByteAligned(n)
	if err != nil {
		return err
	}
	buf := make([]byte, len(values))
	copy(buf, values)

	d.values = buf
	d.pos = 0

	return nil
}

func (d *byteDecoder) DecodeInPlace(v *byte) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.byteDecoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}

// ByteStringEncoder implements the byte string type: a length-prefixed run
// of arbitrary bytes, laid out as a fixed 8-bit-per-byte column.
type ByteStringEncoder struct {
	seq   *SequenceEncoder
	bytes *byteColumn
}

func NewByteStringEncoder() *ByteStringEncoder {
	bytes := &byteColumn{}

	return &ByteStringEncoder{seq: NewSequenceEncoder(bytes), bytes: bytes}
}

func (e *ByteStringEncoder) Reserve(n int) { e.seq.Reserve(n) }

func (e *ByteStringEncoder) EncodeValue(v *[]byte) {
	e.seq.EncodeLen(len(*v))
	e.bytes.Reserve(len(*v))
	for i := range *v {
		e.bytes.EncodeValue(&(*v)[i])
	}
}

func (e *ByteStringEncoder) FinishInto(w *bitio.Writer) { e.seq.FinishInto(w) }

// ByteStringDecoder parses a byte string column, front-loaded-validating
// every occurrence's declared length against the bit budget (invariant 1)
// before any backing array is allocated.
type ByteStringDecoder struct {
	bytesDec *byteDecoder
	values   [][]byte
	pos      int
}

func NewByteStringDecoder() *ByteStringDecoder {
	return &ByteStringDecoder{bytesDec: &byteDecoder{}}
}

func (d *ByteStringDecoder) Populate(r *bitio.Reader, n int) error {
	seq := NewSequenceDecoder(d.bytesDec)
	lengths, err := seq.Populate(r, n, 8)
	if err != nil {
		return err
	}

	values := make([][]byte, n)
	for i, ln := range lengths {
		buf := make([]byte, ln)
		for j := range buf {
			if err := d.bytesDec.DecodeInPlace(&buf[j]); err != nil {
				return err
			}
		}
		values[i] = buf
	}

	d.values = values
	d.pos = 0

	return nil
}

func (d *ByteStringDecoder) DecodeInPlace(v *[]byte) error {
	if d.pos >= len(d.values) {
		return bcerr.New(bcerr.Eof, "columnar.ByteStringDecoder.DecodeInPlace", "column exhausted")
	}
	*v = d.values[d.pos]
	d.pos++

	return nil
}
