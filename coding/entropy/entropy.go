// Package entropy computes Shannon entropy and the resulting lower bound on
// achievable bits for an observed frequency distribution. The bound is a
// floor, not a target: a Huffman code over a distribution whose probabilities
// are not negative powers of two cannot reach it exactly, so the analysis
// layer reports the bound alongside, never in place of, a constructed code's
// actual bit cost.
package entropy

import (
	"math"

	"github.com/dargueta/skew"
)

// Shannon returns the entropy in bits per symbol of the empirical
// distribution described by the given occurrence counts. Counts of zero
// contribute nothing, which is the mathematically defined limit, not an
// error; a distribution with no occurrences at all has no defined entropy
// and returns [skew.ErrEmptyInput]. Negative counts return
// [skew.ErrArgumentOutOfRange].
func Shannon(counts []int) (float64, error) {
	total := 0
	for _, count := range counts {
		if count < 0 {
			return 0, skew.ErrArgumentOutOfRange.WithMessage(
				"occurrence counts cannot be negative")
		}
		total += count
	}
	if total == 0 {
		return 0, skew.ErrEmptyInput.WithMessage(
			"entropy of an empty distribution is undefined")
	}

	h := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		h -= p * math.Log2(p)
	}
	return h, nil
}

// MinBits returns the theoretical minimum number of bits needed to encode
// the entire observed sequence: entropy times the total symbol count.
func MinBits(counts []int) (float64, error) {
	h, err := Shannon(counts)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, count := range counts {
		total += count
	}
	return h * float64(total), nil
}

// MaxEntropy returns the largest entropy any distribution over the given
// number of distinct symbols can have: log2 of the alphabet size, attained
// only by the uniform distribution. Alphabets of one or fewer symbols have
// no uncertainty at all.
func MaxEntropy(distinctSymbols int) float64 {
	if distinctSymbols <= 1 {
		return 0
	}
	return math.Log2(float64(distinctSymbols))
}
