package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// OptionalEncoder implements the optional type as a sum of {absent,
// present}: a 1-bit presence column followed by the wrapped type's column,
// which only ever receives pushes for the present occurrences.
type OptionalEncoder struct {
	presence BoolColumn
	inner    FieldEncoder
}

func NewOptionalEncoder(inner FieldEncoder) *OptionalEncoder {
	return &OptionalEncoder{inner: inner}
}

func (e *OptionalEncoder) Reserve(n int) { e.presence.Reserve(n) }

// EncodeValue pushes the presence bit. The caller pushes the wrapped value
// into inner directly, only when present is true.
func (e *OptionalEncoder) EncodeValue(present bool) {
	e.presence.EncodeValue(&present)
}

func (e *OptionalEncoder) FinishInto(w *bitio.Writer) {
	e.presence.FinishInto(w)
	e.inner.FinishInto(w)
}

// OptionalDecoder mirrors OptionalEncoder: Populate parses the presence
// column for all n occurrences, tallies how many are present, and
// populates inner with exactly that many values.
type OptionalDecoder struct {
	presence BoolDecoder
	inner    FieldDecoder
}

func NewOptionalDecoder(inner FieldDecoder) *OptionalDecoder {
	return &OptionalDecoder{inner: inner}
}

func (d *OptionalDecoder) Populate(r *bitio.Reader, n int) error {
	if err := d.presence.Populate(r, n); err != nil {
		return err
	}

	present := 0
	for i := range n {
		ok, err := d.presence.at(i)
		if err != nil {
			return err
		}
		if ok {
			present++
		}
	}

	return d.inner.Populate(r, present)
}

// Present reports whether occurrence i is present, for a caller walking
// occurrences in order to decide whether to pop from inner next.
func (d *OptionalDecoder) Present(i int) (bool, error) {
	return d.presence.at(i)
}

// at peeks the presence value at index i without consuming the decoder's
// own pop cursor, so Populate's tally pass and a caller's later Present
// queries can both read the column freely.
func (d *BoolDecoder) at(i int) (bool, error) {
	if i < 0 || i >= len(d.values) {
		return false, bcerr.New(bcerr.Eof, "columnar.BoolDecoder.at", "index out of populated range")
	}

	return d.values[i], nil
}
