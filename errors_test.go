package skew_test

import (
	"errors"
	"testing"

	"github.com/dargueta/skew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyReader fails on the first read with a fixed error.
type faultyReader struct {
	err error
}

func (reader faultyReader) Read([]byte) (int, error) {
	return 0, reader.err
}

func TestAnalysisErrorWithMessage(t *testing.T) {
	newErr := skew.ErrArgumentOutOfRange.WithMessage("group size -3 is below 1")
	assert.Equal(
		t,
		"Numerical argument out of domain: group size -3 is below 1",
		newErr.Error())
	assert.ErrorIs(t, newErr, skew.ErrArgumentOutOfRange)
}

func TestAnalysisErrorWithMessageChained(t *testing.T) {
	newErr := skew.ErrMalformedStream.
		WithMessage("stream ends inside a remainder").
		WithMessage("while decoding run 17")
	assert.Equal(
		t,
		"Encoded stream is malformed: stream ends inside a remainder:"+
			" while decoding run 17",
		newErr.Error())
	assert.ErrorIs(
		t, newErr, skew.ErrMalformedStream,
		"chaining messages must not detach the sentinel")
}

func TestAnalysisErrorWrap(t *testing.T) {
	readErr := errors.New("device yanked mid-read")
	newErr := skew.ErrIOFailed.Wrap(readErr)

	assert.EqualValues(
		t, "Input/output error: device yanked mid-read", newErr.Error())
	assert.ErrorIs(t, newErr, readErr, "wrapped error not set as parent")
	assert.ErrorIs(t, newErr, skew.ErrIOFailed, "sentinel not set as parent")
}

func TestAnalysisErrorSentinelsAreDistinct(t *testing.T) {
	wrapped := skew.ErrEmptyAlphabet.WithMessage("run value true")
	assert.ErrorIs(t, wrapped, skew.ErrEmptyAlphabet)
	assert.NotErrorIs(t, wrapped, skew.ErrEmptyInput)
	assert.NotErrorIs(t, wrapped, skew.ErrUnknownSymbol)
}

// A failing reader must surface through extraction as the I/O sentinel with
// the reader's own error still reachable for errors.Is.
func TestExtractBitStream__ReaderFailure(t *testing.T) {
	readErr := errors.New("socket closed by peer")
	_, err := skew.ExtractBitStream(faultyReader{err: readErr})

	require.Error(t, err)
	assert.ErrorIs(t, err, skew.ErrIOFailed)
	assert.ErrorIs(t, err, readErr)
	assert.ErrorContains(t, err, "socket closed by peer")
}
