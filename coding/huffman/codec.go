package huffman

import (
	"fmt"
	"strings"

	"github.com/dargueta/skew"
)

// Code maps each symbol of an alphabet to its codeword, rendered as a string
// of '0' and '1' characters. A valid Code is prefix-free: no codeword is a
// prefix of another.
type Code map[string]string

// Encode maps a symbol sequence through the code table, concatenating the
// codewords in input order. Returns [skew.ErrUnknownSymbol] if a symbol
// outside the trained alphabet appears.
func (code Code) Encode(symbols []string) (string, error) {
	builder := strings.Builder{}
	for _, symbol := range symbols {
		codeword, found := code[symbol]
		if !found {
			return "", skew.ErrUnknownSymbol.WithMessage(
				fmt.Sprintf("%q not in the trained alphabet", symbol))
		}
		builder.WriteString(codeword)
	}
	return builder.String(), nil
}

// EncodedBits returns the number of bits Encode would produce for the given
// sequence, without materializing the bit string.
func (code Code) EncodedBits(symbols []string) (int, error) {
	bits := 0
	for _, symbol := range symbols {
		codeword, found := code[symbol]
		if !found {
			return 0, skew.ErrUnknownSymbol.WithMessage(
				fmt.Sprintf("%q not in the trained alphabet", symbol))
		}
		bits += len(codeword)
	}
	return bits, nil
}

// Codec pairs a Huffman tree with its extracted code table so callers can
// both encode and decode against the same alphabet.
type Codec struct {
	tree Tree
	code Code
}

// NewCodec builds the tree and code table for a frequency table in one step.
// Building twice from equal tables always yields identical codewords.
func NewCodec(table FrequencyTable) (*Codec, error) {
	tree, err := BuildTree(table)
	if err != nil {
		return nil, err
	}
	return &Codec{tree: tree, code: tree.Codes()}, nil
}

// Codewords returns the codec's code table.
func (codec *Codec) Codewords() Code {
	return codec.code
}

// Distinct returns the size of the codec's alphabet.
func (codec *Codec) Distinct() int {
	return len(codec.code)
}

// Encode maps a symbol sequence to its concatenated codewords.
func (codec *Codec) Encode(symbols []string) (string, error) {
	return codec.code.Encode(symbols)
}

// EncodedBits returns the bit cost of encoding the given sequence.
func (codec *Codec) EncodedBits(symbols []string) (int, error) {
	return codec.code.EncodedBits(symbols)
}

// Decode recovers the original symbol sequence from concatenated codewords.
func (codec *Codec) Decode(bits string) ([]string, error) {
	return codec.tree.Decode(bits)
}
