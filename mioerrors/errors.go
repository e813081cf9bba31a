// Package mioerrors defines the closed set of error kinds that the
// container format, the rANS coder, and the CLI can fail with.
package mioerrors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies which of the container's documented failure modes
// occurred.
type Kind int

const (
	// InputIO means the input could not be read.
	InputIO Kind = iota
	// OutputIO means the output could not be written.
	OutputIO
	// BadMagic means the container's magic number did not match.
	BadMagic
	// ShortContainer means the header or a declared blob runs past the
	// end of the file.
	ShortContainer
	// BadModel means the model blob was the wrong size, or its
	// frequencies do not sum to 4096.
	BadModel
	// BadDistance means a match record referenced bytes before the
	// start of the output produced so far.
	BadDistance
	// MatchUnderflow means the flag stream called for more match
	// records than the match blob contains.
	MatchUnderflow
	// SizeMismatch means the reconstructed output length did not equal
	// the declared original size.
	SizeMismatch
)

func (k Kind) String() string {
	switch k {
	case InputIO:
		return "input I/O error"
	case OutputIO:
		return "output I/O error"
	case BadMagic:
		return "bad container magic"
	case ShortContainer:
		return "container truncated"
	case BadModel:
		return "bad frequency model"
	case BadDistance:
		return "match distance out of range"
	case MatchUnderflow:
		return "match blob underflow"
	case SizeMismatch:
		return "decompressed size mismatch"
	default:
		return "unknown error"
	}
}

// Error wraps one of the Kind values above with a formatted message and,
// optionally, the lower-level cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error with a formatted message and no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries cause as its Unwrap target.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// HasKind reports whether err is (or wraps) an *Error of the given kind.
// Callers who need the message or cause too should use errors.As directly.
func HasKind(err error, kind Kind) bool {
	var me *Error
	if !stderrors.As(err, &me) {
		return false
	}
	return me.Kind == kind
}
