package mido

import (
	"github.com/hashicorp/go-multierror"

	"github.com/bpowers/mido/mioerrors"
)

// VerifyContainer checks a container's structural validity — header
// magic, blob placement, and model normalization — without running the
// rANS decoder or reconstructing the output. Unlike Decompress, which
// stops at the first problem it finds, VerifyContainer keeps checking
// every blob and aggregates every problem it finds via
// github.com/hashicorp/go-multierror, so a single run reports everything
// wrong with a container at once.
func VerifyContainer(data []byte) error {
	var result *multierror.Error

	h, _, flagsBlob, matchesBlob, modelBlob, err := decodeHeader(data)
	if err != nil {
		// A header-level failure (bad magic, truncated file, undersized
		// model blob) makes every other check meaningless.
		return err
	}

	if h.matchSize%3 != 0 {
		result = multierror.Append(result, mioerrors.New(mioerrors.ShortContainer,
			"match blob size %d is not a multiple of 3", h.matchSize))
	}
	if len(matchesBlob) != int(h.matchSize) {
		result = multierror.Append(result, mioerrors.New(mioerrors.ShortContainer,
			"match blob is %d bytes, header declares %d", len(matchesBlob), h.matchSize))
	}

	if h.origSize == 0 && (h.ransSize != 0 || h.flagsSize != 0 || h.matchSize != 0) {
		result = multierror.Append(result, mioerrors.New(mioerrors.SizeMismatch,
			"orig_size is 0 but rans/flags/match blobs are non-empty"))
	}

	if _, err := decodeModelBlob(modelBlob); err != nil {
		result = multierror.Append(result, err)
	}
	if flagErr := verifyFlagsAgainstMatches(h, flagsBlob, matchesBlob); flagErr != nil {
		// Walk the flag stream against the match blob the same way
		// Decompress does, so verify catches bad distances and match
		// underflow without running the rANS decoder.
		result = multierror.Append(result, flagErr)
	}

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			msg := "verify found the following problems:\n"
			for _, e := range errs {
				msg += "  - " + e.Error() + "\n"
			}
			return msg
		}
		return result
	}
	return nil
}

func verifyFlagsAgainstMatches(h header, flagsBlob, matchesBlob []byte) error {
	expectedBits := int(h.flagsSize) * 8
	matchPtr := 0
	outputLen := 0
	bitsRead := 0

	for outputLen < int(h.origSize) && bitsRead < expectedBits {
		byteIdx := bitsRead / 8
		bitIdx := bitsRead % 8
		bit := (flagsBlob[byteIdx]>>(7-bitIdx))&1 != 0
		bitsRead++

		if bit {
			if matchPtr+3 > len(matchesBlob) {
				return mioerrors.New(mioerrors.MatchUnderflow,
					"flag stream calls for a match record past the end of the match blob")
			}
			dist := int(matchesBlob[matchPtr]) | int(matchesBlob[matchPtr+1])<<8
			length := int(matchesBlob[matchPtr+2])
			matchPtr += 3

			if dist == 0 || dist > outputLen {
				return mioerrors.New(mioerrors.BadDistance,
					"match distance %d at reconstructed length %d", dist, outputLen)
			}
			outputLen += length
		} else {
			outputLen++
		}
	}
	return nil
}
