package mido

import (
	"encoding/binary"

	"github.com/bpowers/mido/mioerrors"
	"github.com/bpowers/mido/rans"
)

// buildModel counts every byte in data (literals and bytes that end up
// folded into matches alike, per the container format's documented
// behavior) and normalizes the counts into a rans.Model.
func buildModel(data []byte) *rans.Model {
	var raw [256]uint64
	for _, b := range data {
		raw[b]++
	}
	return rans.NewModel(raw, uint64(len(data)))
}

// encodeModelBlob serializes a Model's 256 frequencies as little-endian
// uint16s, matching the container's 512-byte model blob.
func encodeModelBlob(model *rans.Model) []byte {
	freqs := model.Frequencies()
	buf := make([]byte, modelBlobSize)
	for i, f := range freqs {
		binary.LittleEndian.PutUint16(buf[2*i:2*i+2], f)
	}
	return buf
}

// decodeModelBlob parses a 512-byte model blob into a Model and verifies
// that its frequencies sum to rans.Scale, as the container format
// requires.
func decodeModelBlob(blob []byte) (*rans.Model, error) {
	if len(blob) < modelBlobSize {
		return nil, mioerrors.New(mioerrors.BadModel, "model blob is %d bytes, need %d", len(blob), modelBlobSize)
	}
	var freq [256]uint16
	for i := range freq {
		freq[i] = binary.LittleEndian.Uint16(blob[2*i : 2*i+2])
	}
	model := rans.ModelFromFrequencies(freq)
	if model.Total() != rans.Scale {
		return nil, mioerrors.New(mioerrors.BadModel, "frequencies sum to %d, want %d", model.Total(), rans.Scale)
	}
	return model, nil
}
