package columnar

import (
	"testing"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/stretchr/testify/require"
)

// TestSum_RoundTrip models a 2-variant sum {Int(int64) | Flag(bool)} across
// occurrences, verifying each variant column only receives the pushes for
// occurrences that chose it, in original relative order.
func TestSum_RoundTrip(t *testing.T) {
	tags := []int{0, 1, 0, 1, 1}
	ints := []int64{10, 20}    // pushed only for tag==0 occurrences, in order
	flags := []bool{true, false, true} // pushed only for tag==1 occurrences, in order

	discCol := NewDiscriminantColumn(2)
	intCol := NewIntColumn[int64](64)
	flagCol := &BoolColumn{}

	sumEnc := NewSumEncoder(discCol, intCol, flagCol)
	sumEnc.Reserve(len(tags))

	intIdx, flagIdx := 0, 0
	for _, tag := range tags {
		discCol.EncodeValue(&tag)
		switch tag {
		case 0:
			intCol.EncodeValue(&ints[intIdx])
			intIdx++
		case 1:
			flagCol.EncodeValue(&flags[flagIdx])
			flagIdx++
		}
	}

	w := bitio.NewWriter()
	sumEnc.FinishInto(w)
	data := w.Finish()

	discDec := NewDiscriminantDecoder(2)
	intDec := NewIntDecoder[int64](64)
	flagDec := &BoolDecoder{}
	sumDec := NewSumDecoder(discDec, intDec, flagDec)

	r := bitio.NewReader(data)
	require.NoError(t, sumDec.Populate(r, len(tags)))

	gotIntIdx, gotFlagIdx := 0, 0
	for i, wantTag := range tags {
		tag, err := sumDec.Variant(i)
		require.NoError(t, err)
		require.Equal(t, wantTag, tag)

		switch tag {
		case 0:
			var v int64
			require.NoError(t, intDec.DecodeInPlace(&v))
			require.Equal(t, ints[gotIntIdx], v)
			gotIntIdx++
		case 1:
			var v bool
			require.NoError(t, flagDec.DecodeInPlace(&v))
			require.Equal(t, flags[gotFlagIdx], v)
			gotFlagIdx++
		}
	}
}
