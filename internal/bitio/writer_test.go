package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_WriteBit(t *testing.T) {
	t.Run("SingleTrueBit", func(t *testing.T) {
		w := NewWriter()
		w.WriteBit(1)
		require.Equal(t, []byte{0x01}, w.Finish())
	})

	t.Run("BoolTuple", func(t *testing.T) {
		// (true, false, true) packed LSB-first: bit0=1, bit1=0, bit2=1 -> 0x05
		w := NewWriter()
		w.WriteBit(1)
		w.WriteBit(0)
		w.WriteBit(1)
		require.Equal(t, []byte{0x05}, w.Finish())
	})

	t.Run("EightZerosThenOne", func(t *testing.T) {
		w := NewWriter()
		for range 8 {
			w.WriteBit(0)
		}
		w.WriteBit(1)
		require.Equal(t, []byte{0x00, 0x01}, w.Finish())
	})
}

func TestWriter_WriteBits(t *testing.T) {
	t.Run("TwoBitDiscriminant", func(t *testing.T) {
		// variant index 2 of 4 -> "10" LSB-first -> bit0=0,bit1=1 -> 0x02
		w := NewWriter()
		w.WriteBits(2, 2)
		require.Equal(t, []byte{0x02}, w.Finish())
	})

	t.Run("SpansByteBoundary", func(t *testing.T) {
		w := NewWriter()
		w.WriteBits(0x3, 4)  // 4 bits: 0011
		w.WriteBits(0xFF, 8) // crosses into the second byte
		w.WriteBits(0x1, 4)  // finishes the second byte
		got := w.Finish()
		require.Len(t, got, 2)
	})

	t.Run("FullWord", func(t *testing.T) {
		w := NewWriter()
		w.WriteBits(0xFFFFFFFFFFFFFFFF, 64)
		got := w.Finish()
		require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, got)
	})

	t.Run("ZeroBitsIsNoop", func(t *testing.T) {
		w := NewWriter()
		w.WriteBits(0xFF, 0)
		require.Empty(t, w.Finish())
	})

	t.Run("MasksHighBits", func(t *testing.T) {
		w := NewWriter()
		w.WriteBits(0xFF, 4) // only low 4 bits (0xF) should be written
		require.Equal(t, []byte{0x0F}, w.Finish())
	})
}

func TestWriter_RoundTripWithReader(t *testing.T) {
	w := NewWriter()
	w.WriteBits(13, 5)
	w.WriteBit(1)
	w.WriteBits(0xABCD, 16)
	w.WriteBits(1<<40, 41)
	data := w.Finish()

	r := NewReader(data)
	v, err := r.ReadBits(5)
	require.NoError(t, err)
	require.Equal(t, uint64(13), v)

	b, err := r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, 1, b)

	v, err = r.ReadBits(16)
	require.NoError(t, err)
	require.Equal(t, uint64(0xABCD), v)

	v, err = r.ReadBits(41)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), v)
}

func TestWriter_WriteByteAligned(t *testing.T) {
	t.Run("Aligned", func(t *testing.T) {
		w := NewWriter()
		w.WriteByteAligned([]byte{0xDE, 0xAD, 0xBE, 0xEF})
		require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, w.Finish())
	})

	t.Run("Unaligned falls back to bit-by-bit", func(t *testing.T) {
		w := NewWriter()
		w.WriteBits(0x1, 1)
		w.WriteByteAligned([]byte{0xFF})
		data := w.Finish()

		r := NewReader(data)
		bit, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, 1, bit)

		v, err := r.ReadBits(8)
		require.NoError(t, err)
		require.Equal(t, uint64(0xFF), v)
	})
}

func TestWriter_Reset(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0xFF, 8)
	w.Finish()
	w.Reset()
	w.WriteBit(1)
	require.Equal(t, []byte{0x01}, w.Finish())
}
