// Package golomb encodes positive run lengths with a Golomb code: a unary
// quotient followed by a fixed-width binary remainder, relative to a divisor
// m. The code is length-optimal when run lengths follow a geometric
// distribution whose mean matches m, which is exactly the distribution runs
// in a memoryless binary stream follow. Unlike a Huffman code it needs no
// table: the divisor alone defines every codeword, so there is no per-symbol
// transmission overhead to account for.
package golomb

import (
	"fmt"
	mathbits "math/bits"
	"strings"

	"github.com/dargueta/skew"
)

// remainderWidth returns ceil(log2(m)), the fixed bit width used for the
// remainder. A divisor of 1 has no remainder to transmit and uses width 0.
func remainderWidth(m int) int {
	return mathbits.Len(uint(m - 1))
}

// EncodedLen returns the number of bits Encode produces for a run length,
// without building the bit string.
func EncodedLen(length, m int) (int, error) {
	if err := checkArgs(length, m); err != nil {
		return 0, err
	}
	quotient := (length - 1) / m
	return quotient + 1 + remainderWidth(m), nil
}

// Encode returns the codeword for a run length: (length-1)/m ones, a zero,
// then (length-1)%m in ceil(log2(m)) bits. Run lengths below 1 or divisors
// below 1 return [skew.ErrArgumentOutOfRange].
func Encode(length, m int) (string, error) {
	if err := checkArgs(length, m); err != nil {
		return "", err
	}

	quotient := (length - 1) / m
	remainder := (length - 1) % m

	builder := strings.Builder{}
	builder.Grow(quotient + 1 + remainderWidth(m))
	for i := 0; i < quotient; i++ {
		builder.WriteByte('1')
	}
	builder.WriteByte('0')
	for i := remainderWidth(m) - 1; i >= 0; i-- {
		if remainder&(1<<i) != 0 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String(), nil
}

// Decode reverses Encode for a concatenation of codewords, reconstructing
// every run length in order. Returns [skew.ErrMalformedStream] if the stream
// ends mid-codeword, contains a character other than '0'/'1', or holds a
// remainder outside [0, m).
func Decode(bits string, m int) ([]int, error) {
	if m < 1 {
		return nil, skew.ErrArgumentOutOfRange.WithMessage(
			"Golomb divisor must be at least 1")
	}

	width := remainderWidth(m)
	lengths := []int{}
	i := 0
	for i < len(bits) {
		quotient := 0
		for i < len(bits) && bits[i] == '1' {
			quotient++
			i++
		}
		if i >= len(bits) {
			return nil, skew.ErrMalformedStream.WithMessage(
				"stream ends inside a unary quotient")
		}
		if bits[i] != '0' {
			return nil, skew.ErrMalformedStream.WithMessage(
				"stream contains a character other than '0' or '1'")
		}
		i++ // quotient terminator

		remainder := 0
		for b := 0; b < width; b++ {
			if i >= len(bits) {
				return nil, skew.ErrMalformedStream.WithMessage(
					"stream ends inside a remainder")
			}
			switch bits[i] {
			case '1':
				remainder = remainder<<1 | 1
			case '0':
				remainder = remainder << 1
			default:
				return nil, skew.ErrMalformedStream.WithMessage(
					"stream contains a character other than '0' or '1'")
			}
			i++
		}
		if remainder >= m {
			return nil, skew.ErrMalformedStream.WithMessage(
				fmt.Sprintf("remainder %d out of range for divisor %d",
					remainder, m))
		}

		lengths = append(lengths, quotient*m+remainder+1)
	}
	return lengths, nil
}

// SuggestM picks a divisor from an observed mean run length. The geometric
// distribution that produced a given mean is best served by a divisor near
// that mean, so this rounds it to the nearest integer, clamped to at least 1.
// Callers report the mean empirically; there is no adaptive tuning.
func SuggestM(meanRunLength float64) int {
	m := int(meanRunLength + 0.5)
	if m < 1 {
		return 1
	}
	return m
}

func checkArgs(length, m int) error {
	if length < 1 {
		return skew.ErrArgumentOutOfRange.WithMessage(
			"run length must be at least 1")
	}
	if m < 1 {
		return skew.ErrArgumentOutOfRange.WithMessage(
			"Golomb divisor must be at least 1")
	}
	return nil
}
