package analysis_test

import (
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/analysis"
	skewtesting "github.com/dargueta/skew/testing"
)

func mustParse(t *testing.T, flips string) skew.BitStream {
	stream, err := skew.ParseFlips(flips)
	require.NoError(t, err)
	return stream
}

// "HTHT" alternates on every flip, so the transition stream is a single run
// of three. One first-flip bit, one first-run-value bit, and the one-bit
// degenerate codeword give exactly 3 of the original 4 bits.
func TestAnalyze__PureAlternation(t *testing.T) {
	report, err := analysis.Analyze(mustParse(t, "HTHT"), analysis.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 4, report.StreamLength)
	assert.Equal(t, 3, report.TransitionCount)
	assert.Equal(t, 1, report.RunCount)
	assert.InDelta(t, 1.0, report.AlternationRate, 1e-12)

	perRun, found := report.Result(analysis.MethodPerRun)
	require.True(t, found)
	assert.Equal(t, 1, perRun.DistinctSymbols)
	assert.Equal(t, 1, perRun.EncodedBits)
	assert.Equal(t, 3, perRun.TotalBits)
	assert.InDelta(t, 0.75, perRun.Ratio, 1e-12)
	assert.InDelta(t, 25.0, perRun.SavingsPercent, 1e-12)
}

// N-gram strategies chunk the transition stream itself. For "HTHT" that
// stream is "111": each width has a known gram list, leftover bits are stored
// raw, and the header is the single first-outcome bit since no run value is
// needed to reconstruct.
func TestAnalyze__NGramStrategies(t *testing.T) {
	report, err := analysis.Analyze(mustParse(t, "HTHT"), analysis.DefaultConfig())
	require.NoError(t, err)

	tests := []struct {
		Method      string
		Distinct    int
		EncodedBits int
		TotalBits   int
		Savings     float64
		Name        string
	}{
		{"ngram-1", 1, 3, 4, 0, "three one-bit grams"},
		{"ngram-2", 1, 2, 3, 25, "one gram plus a raw leftover bit"},
		{"ngram-3", 1, 1, 2, 50, "the whole stream is one gram"},
		{"ngram-4", 0, 3, 4, 0, "no grams, all bits raw"},
	}
	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				result, found := report.Result(test.Method)
				require.True(t, found)
				assert.Equal(t, test.Distinct, result.DistinctSymbols)
				assert.Equal(t, test.EncodedBits, result.EncodedBits)
				assert.Equal(t, test.TotalBits, result.TotalBits)
				assert.InDelta(t, test.Savings, result.SavingsPercent, 1e-12)
			},
		)
	}
}

// "HHHH" never alternates: one run of three repeats. By symmetry the bit
// counts must be numerically identical to the pure-alternation case.
func TestAnalyze__PureRepetition(t *testing.T) {
	config := analysis.DefaultConfig()

	alternating, err := analysis.Analyze(mustParse(t, "HTHT"), config)
	require.NoError(t, err)
	repeating, err := analysis.Analyze(mustParse(t, "HHHH"), config)
	require.NoError(t, err)

	require.Len(t, repeating.Results, len(alternating.Results))
	for i, expected := range alternating.Results {
		assert.Equal(t, expected, repeating.Results[i], "strategy %q", expected.Method)
	}
}

func TestAnalyze__StrategyOrder(t *testing.T) {
	report, err := analysis.Analyze(
		mustParse(t, skewtesting.GenerateFlips(128, 1)), analysis.DefaultConfig())
	require.NoError(t, err)

	methods := []string{}
	for _, result := range report.Results {
		methods = append(methods, result.Method)
	}
	assert.Equal(
		t,
		[]string{
			"per-run", "grouped-2", "grouped-3", "grouped-4", "grouped-5",
			"grouped-6", "ngram-1", "ngram-2", "ngram-3", "ngram-4", "golomb",
		},
		methods)
}

func TestAnalyze__SingleOutcome(t *testing.T) {
	// One outcome has an empty transition stream: nothing to encode, and
	// every strategy is already optimal at the one-bit header.
	report, err := analysis.Analyze(mustParse(t, "H"), analysis.DefaultConfig())
	require.NoError(t, err)

	for _, result := range report.Results {
		assert.Equal(t, 0, result.EncodedBits, "strategy %q", result.Method)
		assert.Equal(t, 1, result.TotalBits, "strategy %q", result.Method)
		assert.InDelta(t, 1.0, result.Ratio, 1e-12, "strategy %q", result.Method)
		assert.Zero(t, result.DistinctSymbols, "strategy %q", result.Method)
	}
}

func TestAnalyze__EmptyStream(t *testing.T) {
	_, err := analysis.Analyze(skew.BitStream{}, analysis.DefaultConfig())
	assert.ErrorIs(t, err, skew.ErrEmptyInput)
}

func TestAnalyze__BadConfig(t *testing.T) {
	stream := mustParse(t, "HTHT")

	_, err := analysis.Analyze(stream, analysis.Config{GroupSizes: []int{0}})
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = analysis.Analyze(stream, analysis.Config{GolombM: -1})
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = analysis.Analyze(stream, analysis.Config{NGramSizes: []int{-2}})
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = analysis.Analyze(stream, analysis.Config{TableOverheadBitsPerSymbol: -3})
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)

	_, err = analysis.Analyze(stream, analysis.Config{SavingsThreshold: 1.5})
	assert.ErrorIs(t, err, skew.ErrArgumentOutOfRange)
}

// A zero-value Config must behave like DefaultConfig: in particular the
// realistic per-symbol table overhead applies unless the caller explicitly
// turns it off.
func TestAnalyze__ZeroConfigChargesDefaultOverhead(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateFlips(128, 6))

	report, err := analysis.Analyze(stream, analysis.Config{})
	require.NoError(t, err)
	defaulted, err := analysis.Analyze(stream, analysis.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, defaulted.Results, report.Results)

	perRun, found := report.Result(analysis.MethodPerRun)
	require.True(t, found)
	assert.Equal(
		t,
		perRun.DistinctSymbols*analysis.DefaultTableOverheadBitsPerSymbol,
		perRun.TableOverheadBits)

	bare, err := analysis.Analyze(
		stream,
		analysis.Config{TableOverheadBitsPerSymbol: analysis.NoTableOverhead})
	require.NoError(t, err)
	for _, result := range bare.Results {
		assert.Zero(t, result.TableOverheadBits, "strategy %q", result.Method)
		assert.InDelta(
			t, result.SavingsPercent, result.NetSavingsPercent, 1e-12,
			"strategy %q", result.Method)
	}
}

func TestAnalyze__Reproducible(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateFlips(400, 21))
	config := analysis.DefaultConfig()

	first, err := analysis.Analyze(stream, config)
	require.NoError(t, err)
	second, err := analysis.Analyze(stream, config)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze__BestIsHighestNetSavings(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateBiasedFlips(512, 0.8, 3))
	report, err := analysis.Analyze(stream, analysis.DefaultConfig())
	require.NoError(t, err)

	for _, result := range report.Results {
		assert.GreaterOrEqual(
			t, report.Best.NetSavingsPercent, result.NetSavingsPercent,
			"strategy %q beats the reported best", result.Method)
	}
	assert.Greater(
		t, report.Best.NetSavingsPercent, 0.0,
		"a heavily biased stream must compress")
}

func TestAnalyze__EntropyBoundNeverBeaten(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateBiasedFlips(512, 0.65, 9))
	report, err := analysis.Analyze(stream, analysis.DefaultConfig())
	require.NoError(t, err)

	for _, result := range report.Results {
		if result.Method == analysis.MethodGolomb || result.GroupSize == 1 {
			assert.GreaterOrEqual(
				t, float64(result.EncodedBits)+1e-9, result.EntropyMinBits,
				"strategy %q beat its Shannon bound", result.Method)
		}
	}
}

func TestAnalyze__Threshold(t *testing.T) {
	// 64 pure alternations collapse to one run: savings just over 95%.
	stream := mustParse(t, strings.Repeat("HT", 32))

	config := analysis.DefaultConfig()
	config.SavingsThreshold = 0.5
	report, err := analysis.Analyze(stream, config)
	require.NoError(t, err)
	require.NotNil(t, report.FirstAtThreshold)
	assert.Equal(t, analysis.MethodPerRun, report.FirstAtThreshold.Method)

	config.SavingsThreshold = 0.99
	report, err = analysis.Analyze(stream, config)
	require.NoError(t, err)
	assert.Nil(t, report.FirstAtThreshold)

	config.SavingsThreshold = 0
	report, err = analysis.Analyze(stream, config)
	require.NoError(t, err)
	assert.Nil(t, report.FirstAtThreshold)
}

func TestAnalyze__ConfiguredGolombDivisor(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateFlips(128, 2))

	config := analysis.DefaultConfig()
	config.GolombM = 4
	report, err := analysis.Analyze(stream, config)
	require.NoError(t, err)
	assert.Equal(t, 4, report.GolombM)

	golombResult, found := report.Result(analysis.MethodGolomb)
	require.True(t, found)
	assert.Zero(
		t, golombResult.TableOverheadBits,
		"Golomb coding transmits no table")
}

func TestCompare__SelfHasNoAdvantage(t *testing.T) {
	stream := mustParse(t, skewtesting.GenerateBiasedFlips(256, 0.5, 11))

	comparison, err := analysis.Compare(stream, stream, analysis.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, comparison.Advantages, 11)
	for _, advantage := range comparison.Advantages {
		assert.Zero(
			t, advantage.AdvantagePercent,
			"self-comparison via %q", advantage.Method)
	}
}

// A candidate stream with its alternation rate forced to 70% must be
// measurably more compressible than a fair reference at the small group
// sizes. This is the bias-detection signal the whole package exists for.
func TestCompare__BiasedCandidate(t *testing.T) {
	reference := mustParse(t, skewtesting.GenerateBiasedFlips(256, 0.5, 11))
	candidate := mustParse(t, skewtesting.GenerateBiasedFlips(256, 0.7, 13))

	comparison, err := analysis.Compare(reference, candidate, analysis.DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, comparison.Reference.AlternationRate, 0.01)
	assert.InDelta(t, 0.7, comparison.Candidate.AlternationRate, 0.01)

	for _, method := range []string{"per-run", "grouped-2", "grouped-3"} {
		advantage, found := comparison.Advantage(method)
		require.True(t, found, method)
		assert.Greater(t, advantage.AdvantagePercent, 0.0, method)
	}
	assert.Greater(t, comparison.BestAdvantage().AdvantagePercent, 0.0)
}

func TestCompare__EmptyStream(t *testing.T) {
	stream := mustParse(t, "HTHT")
	_, err := analysis.Compare(stream, skew.BitStream{}, analysis.DefaultConfig())
	assert.ErrorIs(t, err, skew.ErrEmptyInput)
}

func TestResults__CSVExport(t *testing.T) {
	report, err := analysis.Analyze(
		mustParse(t, skewtesting.GenerateFlips(200, 4)), analysis.DefaultConfig())
	require.NoError(t, err)

	marshaled, err := gocsv.MarshalString(&report.Results)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(marshaled), "\n")
	require.Len(t, lines, len(report.Results)+1)
	assert.Contains(t, lines[0], "method")
	assert.Contains(t, lines[0], "net_savings_percent")
}
