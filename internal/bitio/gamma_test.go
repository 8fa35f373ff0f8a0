package bitio

import (
	"testing"

	"github.com/arloliu/bitcode/bcerr"
	"github.com/stretchr/testify/require"
)

func TestGamma_LiteralLayouts(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		// gamma(0) = bit "1", padded -> 0x01
		w := NewWriter()
		EncodeGamma(w, 0)
		require.Equal(t, []byte{0x01}, w.Finish())
	})

	t.Run("One", func(t *testing.T) {
		// gamma(1) = bits "010", padded -> 0x02
		w := NewWriter()
		EncodeGamma(w, 1)
		require.Equal(t, []byte{0x02}, w.Finish())
	})

	t.Run("Four", func(t *testing.T) {
		// gamma(4) = bits "00101" (5 bits), padded -> 0x14... actually
		// bit0=0,bit1=0,bit2=1,bit3=0,bit4=1 -> value 0b10100 = 0x14
		w := NewWriter()
		EncodeGamma(w, 4)
		require.Equal(t, []byte{0x14}, w.Finish())
	})
}

func TestGamma_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 3, 4, 5, 10, 100, 1000, 1 << 20, 1<<62 - 1}
	for _, x := range values {
		w := NewWriter()
		EncodeGamma(w, x)
		data := w.Finish()

		r := NewReader(data)
		got, err := DecodeGamma(r, ^uint64(0))
		require.NoError(t, err)
		require.Equal(t, x, got)
	}
}

func TestGamma_BoundRejectsOversizedValue(t *testing.T) {
	w := NewWriter()
	EncodeGamma(w, 1000)
	data := w.Finish()

	r := NewReader(data)
	_, err := DecodeGamma(r, 10)
	require.Error(t, err)
	require.Equal(t, bcerr.Invalid, bcerr.KindOf(err))
}

func TestGamma_LengthBombFailsWithEOF(t *testing.T) {
	// Forge a gamma-coded length of a huge value in a stream with too few
	// remaining bits: 29 leading zero bits is already past what one byte
	// can hold, so decode must fail with Eof, never attempting to read
	// (let alone allocate) a billion elements.
	w := NewWriter()
	for range 8 {
		w.WriteBit(0)
	}
	data := w.Finish()

	r := NewReader(data)
	_, err := DecodeGamma(r, 1_000_000_000)
	require.Error(t, err)
	require.Equal(t, bcerr.Eof, bcerr.KindOf(err))
}
