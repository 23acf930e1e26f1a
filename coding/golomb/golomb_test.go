package golomb_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/coding/golomb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type golombTestCase struct {
	Length   int
	M        int
	Expected string
}

// Known codewords; the m=2 column matches the worked example in the original
// derivation of the code.
var golombTestCases = []golombTestCase{
	{1, 2, "00"},
	{2, 2, "01"},
	{3, 2, "100"},
	{4, 2, "101"},
	{5, 2, "1100"},
	{1, 1, "0"},
	{4, 1, "1110"},
	{6, 4, "1001"},
	{3, 3, "010"},
}

func TestEncode__KnownCodewords(t *testing.T) {
	for _, test := range golombTestCases {
		encoded, err := golomb.Encode(test.Length, test.M)
		require.NoError(t, err, "length %d, m %d", test.Length, test.M)
		assert.Equal(
			t, test.Expected, encoded, "length %d, m %d", test.Length, test.M)

		bits, err := golomb.EncodedLen(test.Length, test.M)
		require.NoError(t, err)
		assert.Equal(t, len(test.Expected), bits)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for _, m := range []int{1, 2, 3, 5, 8} {
		lengths := make([]int, 200)
		encoded := strings.Builder{}
		for i := range lengths {
			lengths[i] = rng.Intn(40) + 1
			codeword, err := golomb.Encode(lengths[i], m)
			require.NoError(t, err)
			encoded.WriteString(codeword)
		}

		decoded, err := golomb.Decode(encoded.String(), m)
		require.NoError(t, err, "m=%d", m)
		assert.Equal(t, lengths, decoded, "m=%d", m)
	}
}

func TestEncode__BadArguments(t *testing.T) {
	_, err := golomb.Encode(0, 2)
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = golomb.Encode(1, 0)
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = golomb.EncodedLen(-3, 2)
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)
}

func TestDecode__Malformed(t *testing.T) {
	tests := []struct {
		Bits string
		M    int
		Name string
	}{
		{"11", 1, "ends inside quotient"},
		{"0", 2, "ends inside remainder"},
		{"011", 3, "remainder out of range"},
		{"0z", 2, "bad character in remainder"},
		{"1x0", 1, "bad character in quotient"},
	}
	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				_, err := golomb.Decode(test.Bits, test.M)
				assert.ErrorIs(t, err, skew.ErrMalformedStream)
			},
		)
	}
}

func TestDecode__Empty(t *testing.T) {
	decoded, err := golomb.Decode("", 2)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSuggestM(t *testing.T) {
	assert.Equal(t, 1, golomb.SuggestM(0))
	assert.Equal(t, 1, golomb.SuggestM(1.4))
	assert.Equal(t, 2, golomb.SuggestM(1.5))
	assert.Equal(t, 3, golomb.SuggestM(2.5))
	assert.Equal(t, 4, golomb.SuggestM(3.7))
}
