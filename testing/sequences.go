// Package testing provides helpers for producing outcome sequences with
// known statistical properties, for use in tests and by the command-line
// tool's generator.
package testing

import (
	"io"
	"math/rand"
	"strings"

	"github.com/xaionaro-go/bytesextra"

	"github.com/dargueta/skew"
)

// GenerateFlips returns a uniformly random sequence of `count` outcome
// characters. The same seed always produces the same sequence.
func GenerateFlips(count int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	builder := strings.Builder{}
	builder.Grow(count)
	for i := 0; i < count; i++ {
		if rng.Intn(2) == 0 {
			builder.WriteByte(skew.HeadSymbol)
		} else {
			builder.WriteByte(skew.TailSymbol)
		}
	}
	return builder.String()
}

// GenerateBiasedFlips returns a sequence of `count` outcomes whose
// alternation rate is forced to the given fraction: exactly
// round(alternationRate * (count-1)) of the adjacent pairs differ, with the
// change positions shuffled by the seeded generator. This produces streams
// with an exact, known bias rather than a sampled one, which is what the
// comparison tests need.
func GenerateBiasedFlips(count int, alternationRate float64, seed int64) string {
	if count <= 0 {
		return ""
	}
	rng := rand.New(rand.NewSource(seed))

	changes := int(alternationRate*float64(count-1) + 0.5)
	transitions := make([]bool, count-1)
	for i := 0; i < changes; i++ {
		transitions[i] = true
	}
	rng.Shuffle(len(transitions), func(i, j int) {
		transitions[i], transitions[j] = transitions[j], transitions[i]
	})

	current := rng.Intn(2) == 0
	builder := strings.Builder{}
	builder.Grow(count)
	writeOutcome(&builder, current)
	for _, change := range transitions {
		if change {
			current = !current
		}
		writeOutcome(&builder, current)
	}
	return builder.String()
}

// FormatFlips breaks a flip sequence into lines of the given width for
// readability, matching the layout of the data files the extractor accepts.
func FormatFlips(flips string, lineWidth int) string {
	if lineWidth <= 0 || len(flips) <= lineWidth {
		return flips
	}

	lines := []string{}
	for start := 0; start < len(flips); start += lineWidth {
		end := start + lineWidth
		if end > len(flips) {
			end = len(flips)
		}
		lines = append(lines, flips[start:end])
	}
	return strings.Join(lines, "\n")
}

// FlipStream returns a fixed-size in-memory read/write stream over the given
// text, for tests that exercise the extractor against a seekable source.
func FlipStream(text string) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker([]byte(text))
}

func writeOutcome(builder *strings.Builder, value bool) {
	if value {
		builder.WriteByte(skew.HeadSymbol)
	} else {
		builder.WriteByte(skew.TailSymbol)
	}
}
