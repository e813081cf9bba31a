package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPacksMSBFirst(t *testing.T) {
	w := NewWriter()
	for _, bit := range []bool{true, false, true, false, false, false, false, false} {
		w.WriteBit(bit)
	}
	w.Flush()
	require.Equal(t, []byte{0b10100000}, w.Bytes())
}

func TestWriterPadsPartialByteWithZero(t *testing.T) {
	w := NewWriter()
	w.WriteBit(true)
	w.Flush()
	assert.Equal(t, []byte{0b10000000}, w.Bytes())
}

func TestWriteBitsMostSignificantFirst(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b101, 3)
	w.Flush()
	assert.Equal(t, []byte{0b10100000}, w.Bytes())
}

func TestReaderMirrorsWriter(t *testing.T) {
	w := NewWriter()
	bits := []bool{true, false, true, true, false, false, true, false, true}
	for _, b := range bits {
		w.WriteBit(b)
	}
	w.Flush()

	r := NewReader(w.Bytes())
	for i, want := range bits {
		got := r.ReadBit()
		assert.Equalf(t, want, got, "bit %d", i)
	}
}

func TestReaderPastEndReturnsFalse(t *testing.T) {
	r := NewReader([]byte{0xFF})
	for i := 0; i < 8; i++ {
		require.True(t, r.ReadBit())
	}
	for i := 0; i < 10; i++ {
		assert.False(t, r.ReadBit())
	}
}

func TestReadBitsAccumulatesMostSignificantFirst(t *testing.T) {
	r := NewReader([]byte{0b10110000})
	got := r.ReadBits(4)
	assert.Equal(t, uint64(0b1011), got)
}
