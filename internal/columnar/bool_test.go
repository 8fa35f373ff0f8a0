package columnar

import (
	"testing"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/stretchr/testify/require"
)

func TestBoolColumn_RoundTrip(t *testing.T) {
	in := []bool{true, false, true, true, false, false, false, true, true}

	w := bitio.NewWriter()
	var col BoolColumn
	col.Reserve(len(in))
	for i := range in {
		col.EncodeValue(&in[i])
	}
	col.FinishInto(w)
	data := w.Finish()

	r := bitio.NewReader(data)
	var dec BoolDecoder
	require.NoError(t, dec.Populate(r, len(in)))

	out := make([]bool, len(in))
	for i := range out {
		require.NoError(t, dec.DecodeInPlace(&out[i]))
	}
	require.Equal(t, in, out)
}

func TestBoolColumn_TupleLayout(t *testing.T) {
	// (true, false, true) -> one byte 0x05, per the tuple scenario.
	values := []bool{true, false, true}
	w := bitio.NewWriter()
	var col BoolColumn
	for i := range values {
		col.EncodeValue(&values[i])
	}
	col.FinishInto(w)
	require.Equal(t, []byte{0x05}, w.Finish())
}

func TestBoolDecoder_EofOnShortInput(t *testing.T) {
	r := bitio.NewReader([]byte{0x01})
	var dec BoolDecoder
	err := dec.Populate(r, 100)
	require.Error(t, err)
}
