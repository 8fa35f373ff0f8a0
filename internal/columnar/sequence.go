package columnar

import "github.com/arloliu/bitcode/internal/bitio"

// SequenceEncoder sequences a length column (one gamma-coded count per
// occurrence of the sequence) followed by the element column, which spans
// every element of every occurrence flattened in order. The element
// column's own pushes happen directly against its encoder as the walk
// visits each element; SequenceEncoder only collects the per-occurrence
// counts needed to reconstruct the chunking on decode.
type SequenceEncoder struct {
	lengths []int
	element FieldEncoder
}

func NewSequenceEncoder(element FieldEncoder) *SequenceEncoder {
	return &SequenceEncoder{element: element}
}

func (s *SequenceEncoder) Reserve(n int) {
	if cap(s.lengths)-len(s.lengths) < n {
		grown := make([]int, len(s.lengths), len(s.lengths)+n)
		copy(grown, s.lengths)
		s.lengths = grown
	}
}

// EncodeLen records one occurrence's element count.
func (s *SequenceEncoder) EncodeLen(n int) {
	s.lengths = append(s.lengths, n)
}

func (s *SequenceEncoder) FinishInto(w *bitio.Writer) {
	var lc LengthColumn
	for _, n := range s.lengths {
		lc.EncodeLen(w, n)
	}
	s.element.FinishInto(w)
	s.lengths = s.lengths[:0]
}

// SequenceDecoder mirrors SequenceEncoder. Populate reads n gamma-coded
// lengths, recomputing the conservative element-count bound (invariant 1)
// against the reader's remaining bits before each length read, then
// populates the element column with the total element count across every
// occurrence. It returns the per-occurrence lengths so the caller can
// chunk subsequent element pops correctly.
type SequenceDecoder struct {
	element FieldDecoder
}

func NewSequenceDecoder(element FieldDecoder) *SequenceDecoder {
	return &SequenceDecoder{element: element}
}

// Populate parses n occurrence lengths and the flattened element column.
// minBitsPerElement is the element type's minimum possible per-value bit
// footprint, used to derive each length's upper bound from the bits
// actually remaining (ElementBound); pass 0 when the element has no fixed
// lower bound (the absolute MaxSequenceLength cap applies instead).
func (s *SequenceDecoder) Populate(r *bitio.Reader, n int, minBitsPerElement int) ([]int, error) {
	lengths := make([]int, n)
	var lc LengthColumn
	total := 0
	for i := range n {
		bound := ElementBound(r.RemainingBits(), minBitsPerElement)
		ln, err := lc.DecodeLen(r, bound)
		if err != nil {
			return nil, err
		}
		lengths[i] = ln
		total += ln
	}

	if err := s.element.Populate(r, total); err != nil {
		return nil, err
	}

	return lengths, nil
}
