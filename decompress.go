package mido

import (
	"encoding/binary"

	"github.com/bpowers/mido/bitio"
	"github.com/bpowers/mido/mioerrors"
	"github.com/bpowers/mido/rans"
)

// Decompress reverses Compress: given a container produced by Compress,
// it returns the original bytes, or a *mioerrors.Error describing why
// the container could not be reconstructed.
func Decompress(container []byte) ([]byte, error) {
	h, ransBlob, flagsBlob, matchesBlob, modelBlob, err := decodeHeader(container)
	if err != nil {
		return nil, err
	}

	if h.origSize == 0 {
		if h.ransSize != 0 || h.flagsSize != 0 || h.matchSize != 0 {
			return nil, mioerrors.New(mioerrors.SizeMismatch, "orig_size is 0 but blobs are non-empty")
		}
		return []byte{}, nil
	}

	model, err := decodeModelBlob(modelBlob)
	if err != nil {
		return nil, err
	}

	dec := rans.NewDecoder(ransBlob)
	flags := bitio.NewReader(flagsBlob)

	output := make([]byte, 0, h.origSize)
	matchPtr := 0

	for uint32(len(output)) < h.origSize {
		if flags.ReadBit() {
			m, next, err := readMatch(matchesBlob, matchPtr)
			if err != nil {
				return nil, err
			}
			matchPtr = next

			if m.Distance == 0 || m.Distance > len(output) {
				return nil, mioerrors.New(mioerrors.BadDistance, "distance %d at output length %d", m.Distance, len(output))
			}
			start := len(output) - m.Distance
			for i := 0; i < m.Length; i++ {
				output = append(output, output[start+i])
			}
		} else {
			output = append(output, dec.Decode(model))
		}
	}

	if uint32(len(output)) != h.origSize {
		return nil, mioerrors.New(mioerrors.SizeMismatch, "reconstructed %d bytes, want %d", len(output), h.origSize)
	}
	return output, nil
}

// readMatch unpacks one 3-byte match record at offset ptr in blob.
func readMatch(blob []byte, ptr int) (Match, int, error) {
	if ptr+3 > len(blob) {
		return Match{}, ptr, mioerrors.New(mioerrors.MatchUnderflow, "need 3 bytes at offset %d, match blob is %d bytes", ptr, len(blob))
	}
	dist := binary.LittleEndian.Uint16(blob[ptr : ptr+2])
	length := blob[ptr+2]
	return Match{Distance: int(dist), Length: int(length)}, ptr + 3, nil
}
