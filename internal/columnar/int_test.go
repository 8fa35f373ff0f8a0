package columnar

import (
	"testing"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/stretchr/testify/require"
)

func TestIntColumn_RoundTrip(t *testing.T) {
	in := []int64{-5, 7, -6, 20, 0, -100, 100}

	w := bitio.NewWriter()
	col := NewIntColumn[int64](64)
	col.Reserve(len(in))
	for i := range in {
		col.EncodeValue(&in[i])
	}
	col.FinishInto(w)
	data := w.Finish()

	r := bitio.NewReader(data)
	dec := NewIntDecoder[int64](64)
	require.NoError(t, dec.Populate(r, len(in)))

	out := make([]int64, len(in))
	for i := range out {
		require.NoError(t, dec.DecodeInPlace(&out[i]))
	}
	require.Equal(t, in, out)
}

func TestIntColumn_NarrowType(t *testing.T) {
	in := []int8{-128, 127, 0, -1, 1}
	w := bitio.NewWriter()
	col := NewIntColumn[int8](8)
	for i := range in {
		col.EncodeValue(&in[i])
	}
	col.FinishInto(w)
	data := w.Finish()

	r := bitio.NewReader(data)
	dec := NewIntDecoder[int8](8)
	require.NoError(t, dec.Populate(r, len(in)))
	out := make([]int8, len(in))
	for i := range out {
		require.NoError(t, dec.DecodeInPlace(&out[i]))
	}
	require.Equal(t, in, out)
}
