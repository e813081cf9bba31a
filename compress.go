// Package mido implements the "MIDO" single-file byte compressor: a
// greedy LZ77 parser over a 32 KiB window feeding a static-model rANS
// entropy coder, packaged into a framed container.
package mido

import (
	"encoding/binary"

	"github.com/bpowers/mido/bitio"
	"github.com/bpowers/mido/rans"
)

// Compress compresses data into a self-contained MIDO container.
// Compressing an empty input returns a nil slice (no output), matching
// the documented no-op behavior of the reference implementation.
func Compress(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	// The model is built from the entire input, including bytes that
	// end up folded into matches rather than encoded as literals. See
	// SPEC_FULL.md's "Model scope" note: this is the observable
	// behavior of the format, preserved deliberately.
	model := buildModel(data)

	parse := parseLZ77(data)

	flagsBlob := packFlags(parse.IsMatch)
	matchesBlob := packMatches(parse.Matches)
	ransBlob := encodeLiterals(model, parse.Literals)
	modelBlob := encodeModelBlob(model)

	h := header{
		origSize:  uint32(len(data)),
		ransSize:  uint32(len(ransBlob)),
		flagsSize: uint32(len(flagsBlob)),
		matchSize: uint32(len(matchesBlob)),
		modelSize: uint32(len(modelBlob)),
	}

	out := make([]byte, 0, headerSize+len(ransBlob)+len(flagsBlob)+len(matchesBlob)+len(modelBlob))
	out = append(out, h.encode()...)
	out = append(out, ransBlob...)
	out = append(out, flagsBlob...)
	out = append(out, matchesBlob...)
	out = append(out, modelBlob...)
	return out
}

// packFlags bit-packs the parser's literal/match flags, MSB first, and
// pads the final byte with zero bits.
func packFlags(isMatch []bool) []byte {
	w := bitio.NewWriter()
	for _, m := range isMatch {
		w.WriteBit(m)
	}
	w.Flush()
	return w.Bytes()
}

// packMatches byte-packs each match as little-endian distance (2 bytes)
// followed by length (1 byte).
func packMatches(matches []Match) []byte {
	buf := make([]byte, 0, len(matches)*3)
	for _, m := range matches {
		var distBuf [2]byte
		binary.LittleEndian.PutUint16(distBuf[:], uint16(m.Distance))
		buf = append(buf, distBuf[0], distBuf[1], byte(m.Length))
	}
	return buf
}

// encodeLiterals rANS-encodes literals in reverse order (the coder is
// LIFO, so encoding last-to-first makes the decoder emit them
// first-to-first) and flushes the final state.
func encodeLiterals(model *rans.Model, literals []byte) []byte {
	enc := rans.NewEncoder()
	for i := len(literals) - 1; i >= 0; i-- {
		enc.Encode(model, literals[i])
	}
	enc.Flush()
	return enc.Bytes()
}
