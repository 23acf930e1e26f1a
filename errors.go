package skew

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// AnalysisError is the error type returned by every stage of the analysis
// pipeline. An error indicates a violated invariant of the data model, never
// a recoverable condition; a failed stage produces no usable partial result.
type AnalysisError interface {
	error
	WithMessage(message string) AnalysisError
	Wrap(err error) AnalysisError
}

type baseSkewError string

const rootError = baseSkewError("")

// ErrEmptyInput indicates a zero-length stream reached a stage that requires
// at least one symbol.
var ErrEmptyInput = rootError.WithMessage("Input stream is empty")

// ErrEmptyAlphabet indicates a code was requested for a frequency model with
// no symbols in it.
var ErrEmptyAlphabet = rootError.WithMessage("Frequency model has no symbols")

// ErrUnknownSymbol indicates an encoder was given a symbol that is absent
// from the code table it was trained with.
var ErrUnknownSymbol = rootError.WithMessage("Symbol missing from code table")

// ErrMalformedStream indicates a decoder could not resolve the remaining bits
// of an encoded stream to a complete codeword.
var ErrMalformedStream = rootError.WithMessage("Encoded stream is malformed")

// ErrMissingStrategy indicates two result sets were compared but one of them
// lacks a strategy present in the other.
var ErrMissingStrategy = rootError.WithMessage("Strategy results do not match")

// ErrArgumentOutOfRange indicates a numeric parameter (group size, Golomb
// divisor, run length) outside its valid domain.
var ErrArgumentOutOfRange = rootError.WithMessage("Numerical argument out of domain")

// ErrIOFailed indicates the reader supplying raw symbol text failed. The
// analysis itself never performs I/O; this can only come from extraction.
var ErrIOFailed = rootError.WithMessage("Input/output error")

func (e baseSkewError) Error() string {
	return string(e)
}

func (e baseSkewError) WithMessage(message string) AnalysisError {
	return customAnalysisError{
		message:       message,
		originalError: e,
	}
}

func (e baseSkewError) Wrap(err error) AnalysisError {
	return customAnalysisError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customAnalysisError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a
// string describing the error.
func (e customAnalysisError) Error() string {
	return e.message
}

func (e customAnalysisError) WithMessage(message string) AnalysisError {
	return customAnalysisError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customAnalysisError) Wrap(err error) AnalysisError {
	return customAnalysisError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customAnalysisError) Unwrap() error {
	return e.originalError
}
