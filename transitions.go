package skew

import (
	"fmt"
	"strings"
)

// Transitions derives the same/different stream from a sequence of outcomes.
// Element i of the result is true iff outcome i+1 differs from outcome i, so
// the result is exactly one element shorter than the input. A stream with
// fewer than two outcomes has no adjacent pairs and yields an empty stream;
// that is a legitimate terminal input, not an error, and every downstream
// strategy treats it as already optimal.
func Transitions(stream BitStream) BitStream {
	if stream.Len() <= 1 {
		return BitStream{}
	}

	values := make([]bool, stream.Len()-1)
	for i := 1; i < stream.Len(); i++ {
		values[i-1] = stream.At(i) != stream.At(i-1)
	}
	return NewBitStream(values)
}

// GroupBits partitions a stream into consecutive fixed-width n-gram symbols,
// rendered as '0'/'1' strings so they can feed a frequency table directly. It
// emits floor(Len/width) grams in order and reports how many trailing bits did
// not fill a gram; the grams followed by those trailing bits reproduce the
// stream exactly. Widths below 1 return [ErrArgumentOutOfRange].
func GroupBits(stream BitStream, width int) ([]string, int, error) {
	if width < 1 {
		return nil, 0, ErrArgumentOutOfRange.WithMessage(
			fmt.Sprintf("n-gram width %d is below 1", width))
	}

	grams := make([]string, stream.Len()/width)
	for g := range grams {
		builder := strings.Builder{}
		builder.Grow(width)
		for i := 0; i < width; i++ {
			if stream.At(g*width + i) {
				builder.WriteByte('1')
			} else {
				builder.WriteByte('0')
			}
		}
		grams[g] = builder.String()
	}
	return grams, stream.Len() % width, nil
}
