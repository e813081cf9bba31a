package mido

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/mido/mioerrors"
)

func TestCompressEmptyInputIsNoOp(t *testing.T) {
	out := Compress(nil)
	assert.Nil(t, out)
}

func TestRoundTripSingleByte(t *testing.T) {
	data := []byte{0x41}
	out := Compress(data)
	require.NotEmpty(t, out)
	assertMagicAndSize(t, out)

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRoundTripAllDistinctBytes(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	out := Compress(data)
	assertMagicAndSize(t, out)

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRoundTripRepeatedBlock(t *testing.T) {
	data := []byte("ABCDEFGHABCDEFGH")
	out := Compress(data)
	assertMagicAndSize(t, out)

	h, _, flags, matches, _, err := decodeHeader(out)
	require.NoError(t, err)
	assert.EqualValues(t, 16, h.origSize)
	assert.Equal(t, []byte{0x00, 0x80}, flags)
	assert.Equal(t, []byte{0x08, 0x00, 0x08}, matches)

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRoundTripRunLengthDenial(t *testing.T) {
	data := bytes.Repeat([]byte{'A'}, 8)
	out := Compress(data)
	assertMagicAndSize(t, out)

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRoundTripBoundaryMatchLength(t *testing.T) {
	block := make([]byte, 300)
	for i := range block {
		block[i] = byte(i % 251)
	}
	data := append(append([]byte{}, block...), block...)

	out := Compress(data)
	assertMagicAndSize(t, out)

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRoundTripVariousSizes(t *testing.T) {
	texts := [][]byte{
		[]byte("a"),
		[]byte(""),
		bytes.Repeat([]byte("hello world "), 500),
		[]byte("the quick brown fox jumps over the lazy dog"),
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	for _, text := range texts {
		out := Compress(text)
		if len(text) == 0 {
			assert.Nil(t, out)
			continue
		}
		got, err := Decompress(out)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestDecompressRejectsBadMagic(t *testing.T) {
	out := Compress([]byte("hello"))
	out[0] ^= 0xFF
	_, err := Decompress(out)
	require.Error(t, err)
	var me *mioerrors.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, mioerrors.BadMagic, me.Kind)
}

func TestDecompressRejectsShortContainer(t *testing.T) {
	out := Compress([]byte("hello"))
	_, err := Decompress(out[:len(out)-10])
	require.Error(t, err)
	var me *mioerrors.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, mioerrors.ShortContainer, me.Kind)
}

func TestDecompressRejectsUndersizedModelBlob(t *testing.T) {
	h := header{origSize: 1, ransSize: 4, flagsSize: 1, matchSize: 0, modelSize: 511}
	buf := h.encode()
	buf = append(buf, make([]byte, 4+1+511)...)
	_, err := Decompress(buf)
	require.Error(t, err)
	var me *mioerrors.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, mioerrors.BadModel, me.Kind)
}

func TestDecompressRejectsBadDistance(t *testing.T) {
	out := Compress([]byte("ABCDEFGHABCDEFGH"))
	h, rans, flags, matches, model, err := decodeHeader(out)
	require.NoError(t, err)

	// Corrupt the match's distance to reference before the start of
	// output.
	matches = append([]byte{}, matches...)
	binary.LittleEndian.PutUint16(matches[0:2], 9999)

	rebuilt := rebuildContainer(h, rans, flags, matches, model)
	_, err = Decompress(rebuilt)
	require.Error(t, err)
	var me *mioerrors.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, mioerrors.BadDistance, me.Kind)
}

func TestDecompressRejectsMatchUnderflow(t *testing.T) {
	out := Compress([]byte("ABCDEFGHABCDEFGH"))
	h, rans, flags, matches, model, err := decodeHeader(out)
	require.NoError(t, err)

	h.matchSize = 0
	rebuilt := rebuildContainer(h, rans, flags, matches[:0], model)
	_, err = Decompress(rebuilt)
	require.Error(t, err)
	var me *mioerrors.Error
	require.ErrorAs(t, err, &me)
	assert.Equal(t, mioerrors.MatchUnderflow, me.Kind)
}

func TestVerifyContainerAggregatesMultipleProblems(t *testing.T) {
	out := Compress([]byte("ABCDEFGHABCDEFGH"))
	h, rans, flags, matches, model, err := decodeHeader(out)
	require.NoError(t, err)

	matches = append([]byte{}, matches...)
	binary.LittleEndian.PutUint16(matches[0:2], 9999)
	// A stray trailing byte makes the match blob size not a multiple of 3.
	matches = append(matches, 0)

	rebuilt := rebuildContainer(h, rans, flags, matches, model)
	err = VerifyContainer(rebuilt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problems")
	assert.Contains(t, err.Error(), "not a multiple of 3")
	assert.Contains(t, err.Error(), "match distance")
}

func TestVerifyContainerAcceptsValidContainer(t *testing.T) {
	out := Compress([]byte("hello, hello, hello again"))
	require.NoError(t, VerifyContainer(out))
}

func assertMagicAndSize(t *testing.T, out []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(out), headerSize)
	assert.Equal(t, []byte{0x4F, 0x44, 0x49, 0x4D}, out[0:4])

	h, rans, flags, matches, model, err := decodeHeader(out)
	require.NoError(t, err)
	assert.Equal(t, headerSize+len(rans)+len(flags)+len(matches)+len(model), len(out))
	assert.EqualValues(t, modelBlobSize, h.modelSize)
	assert.Zero(t, h.matchSize % 3)
}

func rebuildContainer(h header, rans, flags, matches, model []byte) []byte {
	h.ransSize = uint32(len(rans))
	h.flagsSize = uint32(len(flags))
	h.matchSize = uint32(len(matches))
	h.modelSize = uint32(len(model))

	out := make([]byte, 0, headerSize+len(rans)+len(flags)+len(matches)+len(model))
	out = append(out, h.encode()...)
	out = append(out, rans...)
	out = append(out, flags...)
	out = append(out, matches...)
	out = append(out, model...)
	return out
}
