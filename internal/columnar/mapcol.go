package columnar

import "github.com/arloliu/bitcode/internal/bitio"

// MapEncoder implements the map type as a sequence of key/value pairs:
// one length per occurrence, followed by the flattened key column and then
// the flattened value column, each spanning every entry of every
// occurrence. Entry order is whatever order the caller iterates entries in
// during encode; bitcode does not require a canonical ordering.
type MapEncoder struct {
	lengths []int
	key     FieldEncoder
	value   FieldEncoder
}

func NewMapEncoder(key, value FieldEncoder) *MapEncoder {
	return &MapEncoder{key: key, value: value}
}

func (e *MapEncoder) Reserve(n int) {
	if cap(e.lengths)-len(e.lengths) < n {
		grown := make([]int, len(e.lengths), len(e.lengths)+n)
		copy(grown, e.lengths)
		e.lengths = grown
	}
}

// EncodeLen records one occurrence's entry count.
func (e *MapEncoder) EncodeLen(n int) {
	e.lengths = append(e.lengths, n)
}

func (e *MapEncoder) FinishInto(w *bitio.Writer) {
	var lc LengthColumn
	for _, n := range e.lengths {
		lc.EncodeLen(w, n)
	}
	e.key.FinishInto(w)
	e.value.FinishInto(w)
	e.lengths = e.lengths[:0]
}

// MapDecoder mirrors MapEncoder. Populate parses n occurrence lengths,
// then populates the key column and the value column each with the total
// entry count. No uniqueness or ordering is enforced on decoded keys: a
// map column round-trips exactly what was pushed, duplicates included.
type MapDecoder struct {
	key   FieldDecoder
	value FieldDecoder
}

func NewMapDecoder(key, value FieldDecoder) *MapDecoder {
	return &MapDecoder{key: key, value: value}
}

func (d *MapDecoder) Populate(r *bitio.Reader, n int, minBitsPerEntry int) ([]int, error) {
	lengths := make([]int, n)
	var lc LengthColumn
	total := 0
	for i := range n {
		bound := ElementBound(r.RemainingBits(), minBitsPerEntry)
		ln, err := lc.DecodeLen(r, bound)
		if err != nil {
			return nil, err
		}
		lengths[i] = ln
		total += ln
	}

	if err := d.key.Populate(r, total); err != nil {
		return nil, err
	}
	if err := d.value.Populate(r, total); err != nil {
		return nil, err
	}

	return lengths, nil
}
