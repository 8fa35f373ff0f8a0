package columnar

import (
	"testing"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/stretchr/testify/require"
)

// TestProduct_RoundTrip models a two-field struct {ID uint64; Active bool}
// across 3 occurrences, verifying the field columns are concatenated in
// declaration order and read back correctly.
func TestProduct_RoundTrip(t *testing.T) {
	ids := []uint64{1, 2, 3}
	actives := []bool{true, false, true}

	idCol := NewUintColumn[uint64](64)
	var activeCol BoolColumn

	prod := NewProductEncoder(idCol, &activeCol)
	prod.Reserve(len(ids))
	for i := range ids {
		idCol.EncodeValue(&ids[i])
		activeCol.EncodeValue(&actives[i])
	}

	w := bitio.NewWriter()
	prod.FinishInto(w)
	data := w.Finish()

	idDec := NewUintDecoder[uint64](64)
	var activeDec BoolDecoder
	prodDec := NewProductDecoder(idDec, &activeDec)

	r := bitio.NewReader(data)
	require.NoError(t, prodDec.Populate(r, len(ids)))

	for i := range ids {
		var id uint64
		var active bool
		require.NoError(t, idDec.DecodeInPlace(&id))
		require.NoError(t, activeDec.DecodeInPlace(&active))
		require.Equal(t, ids[i], id)
		require.Equal(t, actives[i], active)
	}
}
