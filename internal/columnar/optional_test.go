package columnar

import (
	"testing"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/stretchr/testify/require"
)

func TestOptional_RoundTrip(t *testing.T) {
	present := []bool{true, false, true, true, false}
	values := []uint64{10, 20, 30} // pushed only for the present occurrences, in order

	inner := NewUintColumn[uint64](64)
	opt := NewOptionalEncoder(inner)
	opt.Reserve(len(present))

	vi := 0
	for _, p := range present {
		opt.EncodeValue(p)
		if p {
			inner.EncodeValue(&values[vi])
			vi++
		}
	}

	w := bitio.NewWriter()
	opt.FinishInto(w)
	data := w.Finish()

	innerDec := NewUintDecoder[uint64](64)
	optDec := NewOptionalDecoder(innerDec)
	r := bitio.NewReader(data)
	require.NoError(t, optDec.Populate(r, len(present)))

	gotVi := 0
	for i, wantPresent := range present {
		ok, err := optDec.Present(i)
		require.NoError(t, err)
		require.Equal(t, wantPresent, ok)
		if ok {
			var v uint64
			require.NoError(t, innerDec.DecodeInPlace(&v))
			require.Equal(t, values[gotVi], v)
			gotVi++
		}
	}
}

func TestOptional_AllAbsent(t *testing.T) {
	present := []bool{false, false, false}
	inner := NewUintColumn[uint64](64)
	opt := NewOptionalEncoder(inner)
	for _, p := range present {
		opt.EncodeValue(p)
	}

	w := bitio.NewWriter()
	opt.FinishInto(w)
	data := w.Finish()

	innerDec := NewUintDecoder[uint64](64)
	optDec := NewOptionalDecoder(innerDec)
	r := bitio.NewReader(data)
	require.NoError(t, optDec.Populate(r, len(present)))
	for i := range present {
		ok, err := optDec.Present(i)
		require.NoError(t, err)
		require.False(t, ok)
	}
}
