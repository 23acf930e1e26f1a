// Package bits packs textual bitstrings into bytes.
//
// The codecs in this repository render codewords as strings of '0' and '1'
// characters because the analysis only ever needs to count them. When a test
// or tool wants the actual packed bytes an encoder would emit, this package
// bridges the gap: bits are accumulated MSB-first and each completed byte is
// written to the underlying stream. This is a packing helper, not a container
// format; nothing here records lengths, divisors, or code tables.
package bits

import (
	"io"

	"github.com/dargueta/skew"
)

// Writer accumulates bits MSB-first and writes each completed byte to the
// underlying writer.
type Writer struct {
	out     io.Writer
	cache   byte
	pending uint8
	written int
}

// NewWriter creates a Writer emitting packed bytes to `out`.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteBit appends a single bit.
func (writer *Writer) WriteBit(bit bool) error {
	if bit {
		writer.cache |= 1 << (7 - writer.pending)
	}
	writer.pending++
	writer.written++

	if writer.pending < 8 {
		return nil
	}
	if _, err := writer.out.Write([]byte{writer.cache}); err != nil {
		return skew.ErrIOFailed.Wrap(err)
	}
	writer.cache = 0
	writer.pending = 0
	return nil
}

// WriteString appends every bit of a '0'/'1' string in order. Any other
// character returns [skew.ErrMalformedStream].
func (writer *Writer) WriteString(bits string) error {
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			if err := writer.WriteBit(false); err != nil {
				return err
			}
		case '1':
			if err := writer.WriteBit(true); err != nil {
				return err
			}
		default:
			return skew.ErrMalformedStream.WithMessage(
				"bitstring contains a character other than '0' or '1'")
		}
	}
	return nil
}

// Flush pads the current partial byte with zero bits and writes it out. It
// is a no-op at a byte boundary. Padding bits are not counted by
// [Writer.BitsWritten].
func (writer *Writer) Flush() error {
	if writer.pending == 0 {
		return nil
	}
	if _, err := writer.out.Write([]byte{writer.cache}); err != nil {
		return skew.ErrIOFailed.Wrap(err)
	}
	writer.cache = 0
	writer.pending = 0
	return nil
}

// BitsWritten returns the number of bits appended so far, excluding any
// padding added by Flush.
func (writer *Writer) BitsWritten() int {
	return writer.written
}
