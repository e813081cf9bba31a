package mido

import (
	"encoding/binary"

	"github.com/bpowers/mido/mioerrors"
)

// magic is the container's four-byte identifier, "MIDO" read as a
// little-endian uint32 (bytes O,D,I,M on disk).
const magic uint32 = 0x4D49444F

// headerSize is the fixed size of the container header in bytes.
const headerSize = 24

// modelBlobSize is the fixed size of the frequency-model blob: 256
// little-endian uint16 frequencies.
const modelBlobSize = 512

// header is the container's fixed 24-byte preamble.
type header struct {
	origSize  uint32
	ransSize  uint32
	flagsSize uint32
	matchSize uint32
	modelSize uint32
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.origSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.ransSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.flagsSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.matchSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.modelSize)
	return buf
}

// decodeHeader validates and parses the container's header, and returns
// the four blob slices it frames. It returns a *mioerrors.Error on any
// structural problem: bad magic, a blob whose declared size runs past
// the end of the file, or a model blob shorter than modelBlobSize.
func decodeHeader(data []byte) (h header, rans, flags, matches, model []byte, err error) {
	if len(data) < headerSize {
		err = mioerrors.New(mioerrors.ShortContainer, "file is %d bytes, need at least %d for the header", len(data), headerSize)
		return
	}

	gotMagic := binary.LittleEndian.Uint32(data[0:4])
	if gotMagic != magic {
		err = mioerrors.New(mioerrors.BadMagic, "got %#08x, want %#08x", gotMagic, magic)
		return
	}

	h.origSize = binary.LittleEndian.Uint32(data[4:8])
	h.ransSize = binary.LittleEndian.Uint32(data[8:12])
	h.flagsSize = binary.LittleEndian.Uint32(data[12:16])
	h.matchSize = binary.LittleEndian.Uint32(data[16:20])
	h.modelSize = binary.LittleEndian.Uint32(data[20:24])

	if h.modelSize < modelBlobSize {
		err = mioerrors.New(mioerrors.BadModel, "model blob is %d bytes, need at least %d", h.modelSize, modelBlobSize)
		return
	}

	offset := uint64(headerSize)
	rans, offset, err = sliceBlob(data, offset, uint64(h.ransSize))
	if err != nil {
		return
	}
	flags, offset, err = sliceBlob(data, offset, uint64(h.flagsSize))
	if err != nil {
		return
	}
	matches, offset, err = sliceBlob(data, offset, uint64(h.matchSize))
	if err != nil {
		return
	}
	model, _, err = sliceBlob(data, offset, uint64(h.modelSize))
	if err != nil {
		return
	}
	return
}

func sliceBlob(data []byte, offset, size uint64) ([]byte, uint64, error) {
	end := offset + size
	if end > uint64(len(data)) {
		return nil, 0, mioerrors.New(mioerrors.ShortContainer, "blob at offset %d of size %d runs past end of file (%d bytes)", offset, size, len(data))
	}
	return data[offset:end], end, nil
}
