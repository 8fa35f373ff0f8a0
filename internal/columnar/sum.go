package columnar

import (
	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/pool"
)

// VariantDecoder is the read side of the VariantSelector capability: a
// discriminant decoder that can be queried for the validated tag at a given
// occurrence index, in addition to the ordinary FieldDecoder sequencing
// surface.
type VariantDecoder interface {
	FieldDecoder
	Variant(i int) (int, error)
}

// SumEncoder sequences a tagged union's discriminant column followed by
// every variant's payload column, in variant order. Each variant's column
// only ever receives pushes for the occurrences that selected it, so its
// own Reserve/EncodeValue calls happen directly against that variant's
// encoder during the struct/slice walk, driven by the discriminant chosen
// for each occurrence.
type SumEncoder struct {
	discriminant FieldEncoder
	variants     []FieldEncoder
}

// NewSumEncoder builds a sum over a discriminant column (DiscriminantColumn
// or HintedDiscriminantColumn) and variants in tag order.
func NewSumEncoder(discriminant FieldEncoder, variants ...FieldEncoder) *SumEncoder {
	return &SumEncoder{discriminant: discriminant, variants: variants}
}

func (s *SumEncoder) Reserve(n int) {
	s.discriminant.Reserve(n)
}

func (s *SumEncoder) FinishInto(w *bitio.Writer) {
	s.discriminant.FinishInto(w)
	for _, v := range s.variants {
		v.FinishInto(w)
	}
}

// SumDecoder mirrors SumEncoder. Populate first parses the discriminant
// column for all n occurrences, then tallies how many occurrences selected
// each variant and populates that variant's column with exactly that many
// values — the variant columns are dense, holding only the occurrences
// that chose them, in original relative order.
type SumDecoder struct {
	discriminant VariantDecoder
	variants     []FieldDecoder
}

func NewSumDecoder(discriminant VariantDecoder, variants ...FieldDecoder) *SumDecoder {
	return &SumDecoder{discriminant: discriminant, variants: variants}
}

func (s *SumDecoder) Populate(r *bitio.Reader, n int) error {
	if err := s.discriminant.Populate(r, n); err != nil {
		return err
	}

	counts, release := pool.GetIntSlice(len(s.variants))
	defer release()
	for i := range counts {
		counts[i] = 0
	}
	for i := range n {
		tag, err := s.discriminant.Variant(i)
		if err != nil {
			return err
		}
		counts[tag]++
	}

	for i, v := range s.variants {
		if err := v.Populate(r, counts[i]); err != nil {
			return err
		}
	}

	return nil
}

// Variant exposes the validated tag at occurrence i, so a caller walking
// occurrences in order knows which variant decoder to pop from next.
func (s *SumDecoder) Variant(i int) (int, error) {
	return s.discriminant.Variant(i)
}
