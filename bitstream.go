// Package skew analyzes two-valued outcome sequences (coin flips, predictions,
// binary sensor readings) for exploitable statistical structure. A truly random
// sequence is incompressible, so any compression achieved by the strategies in
// the analysis sub-package is direct evidence of bias in the source.
//
// The pipeline is: raw symbol text -> BitStream -> transition stream -> run
// sequence -> one or more entropy-coding strategies. This package holds the
// stream types and the stages up through run segmentation; the code
// construction lives under coding/ and the strategy orchestration under
// analysis/.
package skew

import (
	"bufio"
	"io"
	"strings"

	"github.com/boljen/go-bitmap"
)

// The two recognized outcome symbols. Extraction is case-insensitive; every
// other character in the input is discarded.
const (
	HeadSymbol = 'H'
	TailSymbol = 'T'
)

// CommentPrefix marks input lines that extraction skips entirely.
const CommentPrefix = "#"

// maxExtractLineBytes is the line-length cap for extraction. Flip dumps are
// sometimes written as one enormous unbroken line, far past bufio.Scanner's
// 64KiB default.
const maxExtractLineBytes = 1 << 26

// BitStream is an immutable ordered sequence of boolean outcomes. The zero
// value is an empty stream.
type BitStream struct {
	bits   bitmap.Bitmap
	length int
}

// NewBitStream creates a BitStream holding a copy of the given values.
func NewBitStream(values []bool) BitStream {
	stream := BitStream{
		bits:   bitmap.New(len(values)),
		length: len(values),
	}
	for i, value := range values {
		stream.bits.Set(i, value)
	}
	return stream
}

// Len returns the number of outcomes in the stream.
func (stream BitStream) Len() int {
	return stream.length
}

// At returns the outcome at index i. The index must be in [0, Len()).
func (stream BitStream) At(i int) bool {
	return stream.bits.Get(i)
}

// Bools returns the stream contents as a new boolean slice.
func (stream BitStream) Bools() []bool {
	values := make([]bool, stream.length)
	for i := 0; i < stream.length; i++ {
		values[i] = stream.bits.Get(i)
	}
	return values
}

// String renders the stream using the recognized symbol characters, mostly
// for debugging and test failure messages.
func (stream BitStream) String() string {
	builder := strings.Builder{}
	builder.Grow(stream.length)
	for i := 0; i < stream.length; i++ {
		if stream.bits.Get(i) {
			builder.WriteByte(HeadSymbol)
		} else {
			builder.WriteByte(TailSymbol)
		}
	}
	return builder.String()
}

// AlternationRate returns the fraction of adjacent outcome pairs that differ.
// A fair random source sits near 0.5; human-generated sequences usually sit
// noticeably above it. Streams shorter than two outcomes have no adjacent
// pairs and report 0.
func (stream BitStream) AlternationRate() float64 {
	if stream.length <= 1 {
		return 0
	}

	changed := 0
	for i := 1; i < stream.length; i++ {
		if stream.bits.Get(i) != stream.bits.Get(i-1) {
			changed++
		}
	}
	return float64(changed) / float64(stream.length-1)
}

// ExtractBitStream reads raw symbol text and normalizes it into a BitStream.
// Lines beginning with [CommentPrefix] are skipped; on the remaining lines
// only the two recognized symbols are kept, case-insensitively, with
// [HeadSymbol] mapping to true and [TailSymbol] to false.
//
// Returns [ErrEmptyInput] if no recognized symbols were found, and passes
// through any error from the underlying reader.
func ExtractBitStream(reader io.Reader) (BitStream, error) {
	values := []bool{}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(nil, maxExtractLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), CommentPrefix) {
			continue
		}

		for _, character := range strings.ToUpper(line) {
			switch character {
			case HeadSymbol:
				values = append(values, true)
			case TailSymbol:
				values = append(values, false)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return BitStream{}, ErrIOFailed.Wrap(err)
	}

	if len(values) == 0 {
		return BitStream{}, ErrEmptyInput.WithMessage(
			"no recognized symbols in input")
	}
	return NewBitStream(values), nil
}

// ParseFlips is a convenience wrapper around [ExtractBitStream] for callers
// that already hold the raw text in memory.
func ParseFlips(text string) (BitStream, error) {
	return ExtractBitStream(strings.NewReader(text))
}
