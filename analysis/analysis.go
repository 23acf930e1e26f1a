// Package analysis runs every entropy-coding strategy against a stream and
// ranks them, answering the question the rest of the repository is built
// around: how far below one bit per outcome can this sequence be driven? A
// stream from a fair memoryless source cannot be compressed at all, so the
// margin by which a candidate stream compresses better than a known-fair
// reference is a direct measurement of exploitable bias.
//
// Most strategies are evaluated over the run sequence of the transition
// stream: per-run Huffman coding with a separate code table per run value,
// grouped Huffman coding over fixed-width tuples of run lengths, and
// Golomb/unary coding of individual run lengths. The n-gram strategies skip
// run segmentation and Huffman-code fixed-width chunks of the transition
// stream itself. Run-based strategies charge a fixed two-bit header (the
// first raw outcome plus the value of the first run); n-gram strategies need
// only the first-outcome bit. Either way the header is included in every
// total, so results are comparable across strategies and across streams.
package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/coding/entropy"
	"github.com/dargueta/skew/coding/golomb"
	"github.com/dargueta/skew/coding/huffman"
)

// MethodPerRun identifies the per-run Huffman strategy (grouping width 1).
const MethodPerRun = "per-run"

// MethodGolomb identifies the Golomb/unary run-length strategy.
const MethodGolomb = "golomb"

// MethodName returns the identifier for the run-based Huffman strategy at the
// given grouping width.
func MethodName(groupSize int) string {
	if groupSize == 1 {
		return MethodPerRun
	}
	return fmt.Sprintf("grouped-%d", groupSize)
}

// NGramMethodName returns the identifier for the transition-stream n-gram
// Huffman strategy at the given width.
func NGramMethodName(width int) string {
	return fmt.Sprintf("ngram-%d", width)
}

// DefaultTableOverheadBitsPerSymbol estimates transmitting one code table
// entry: roughly four bits for the code length plus three for the symbol.
const DefaultTableOverheadBitsPerSymbol = 7

// NoTableOverhead makes [Config.TableOverheadBitsPerSymbol] charge nothing,
// so raw and net savings coincide.
const NoTableOverhead = -1

// DefaultGroupSizes are the grouping widths evaluated when none are
// configured.
var DefaultGroupSizes = []int{1, 2, 3, 4, 5, 6}

// DefaultNGramSizes are the transition-stream n-gram widths evaluated when
// none are configured.
var DefaultNGramSizes = []int{1, 2, 3, 4}

// Config controls which strategies run and how their costs are estimated.
// The zero value is equivalent to [DefaultConfig]: every default strategy,
// an auto-selected Golomb divisor, the standard table overhead estimate, and
// no threshold reporting.
type Config struct {
	// GroupSizes lists the run grouping widths to evaluate. Nil or empty
	// means [DefaultGroupSizes]. Duplicates are dropped; widths below 1 are
	// an error.
	GroupSizes []int
	// NGramSizes lists the transition-stream n-gram widths to evaluate. Nil
	// or empty means [DefaultNGramSizes]. Duplicates are dropped; widths
	// below 1 are an error.
	NGramSizes []int
	// GolombM is the divisor for Golomb coding. Zero derives it from the
	// observed mean run length.
	GolombM int
	// TableOverheadBitsPerSymbol is the estimated cost of transmitting one
	// code table entry, used only for the net savings figures. Zero means
	// [DefaultTableOverheadBitsPerSymbol]; pass [NoTableOverhead] to charge
	// nothing.
	TableOverheadBitsPerSymbol int
	// SavingsThreshold is a target savings fraction in [0, 1]. When
	// positive, the report names the first strategy in preference order
	// whose raw savings reach it.
	SavingsThreshold float64
}

// DefaultConfig returns the recommended configuration: all default group and
// n-gram sizes, auto Golomb divisor, and the standard table overhead
// estimate.
func DefaultConfig() Config {
	return Config{
		GroupSizes:                 DefaultGroupSizes,
		NGramSizes:                 DefaultNGramSizes,
		TableOverheadBitsPerSymbol: DefaultTableOverheadBitsPerSymbol,
	}
}

func (config Config) normalized() (Config, error) {
	var err error
	config.GroupSizes, err = normalizeSizes(
		config.GroupSizes, DefaultGroupSizes, "group size")
	if err != nil {
		return Config{}, err
	}
	config.NGramSizes, err = normalizeSizes(
		config.NGramSizes, DefaultNGramSizes, "n-gram width")
	if err != nil {
		return Config{}, err
	}

	if config.GolombM < 0 {
		return Config{}, skew.ErrArgumentOutOfRange.WithMessage(
			"Golomb divisor cannot be negative")
	}
	switch {
	case config.TableOverheadBitsPerSymbol == 0:
		config.TableOverheadBitsPerSymbol = DefaultTableOverheadBitsPerSymbol
	case config.TableOverheadBitsPerSymbol == NoTableOverhead:
		config.TableOverheadBitsPerSymbol = 0
	case config.TableOverheadBitsPerSymbol < 0:
		return Config{}, skew.ErrArgumentOutOfRange.WithMessage(
			"table overhead cannot be negative")
	}
	if config.SavingsThreshold < 0 || config.SavingsThreshold > 1 {
		return Config{}, skew.ErrArgumentOutOfRange.WithMessage(
			"savings threshold must be a fraction in [0, 1]")
	}
	return config, nil
}

func normalizeSizes(sizes, defaults []int, what string) ([]int, error) {
	if len(sizes) == 0 {
		return defaults, nil
	}

	seen := map[int]bool{}
	kept := []int{}
	for _, size := range sizes {
		if size < 1 {
			return nil, skew.ErrArgumentOutOfRange.WithMessage(
				fmt.Sprintf("%s %d is below 1", what, size))
		}
		if !seen[size] {
			seen[size] = true
			kept = append(kept, size)
		}
	}
	sort.Ints(kept)
	return kept, nil
}

// Analyze runs every configured strategy against the stream and returns one
// [CompressionResult] per strategy: run group sizes ascending, then n-gram
// widths ascending, then Golomb last. An empty stream returns
// [skew.ErrEmptyInput]. If any strategy fails, no report is returned at all;
// partial results are never handed out.
func Analyze(stream skew.BitStream, config Config) (*Report, error) {
	if stream.Len() == 0 {
		return nil, skew.ErrEmptyInput.WithMessage(
			"cannot analyze an empty stream")
	}
	cfg, err := config.normalized()
	if err != nil {
		return nil, err
	}

	transitions := skew.Transitions(stream)
	runs := skew.Runs(transitions)

	perValue, err := buildRunCodes(runs)
	if err != nil {
		return nil, err
	}

	divisor := cfg.GolombM
	if divisor == 0 {
		divisor = golomb.SuggestM(skew.MeanRunLength(runs))
	}

	report := &Report{
		StreamLength:    stream.Len(),
		TransitionCount: transitions.Len(),
		AlternationRate: stream.AlternationRate(),
		RunCount:        len(runs),
		GolombM:         divisor,
	}

	var strategyErrs error
	for _, groupSize := range cfg.GroupSizes {
		var result CompressionResult
		var evalErr error
		if groupSize == 1 {
			result, evalErr = evaluatePerRun(runs, perValue)
		} else {
			result, evalErr = evaluateGrouped(runs, groupSize, perValue)
		}
		if evalErr != nil {
			strategyErrs = multierror.Append(strategyErrs, evalErr)
			continue
		}
		report.Results = append(
			report.Results,
			finalizeResult(
				result,
				stream.Len(),
				headerBits(len(runs)),
				cfg.TableOverheadBitsPerSymbol,
			),
		)
	}

	for _, width := range cfg.NGramSizes {
		result, evalErr := evaluateNGram(transitions, width)
		if evalErr != nil {
			strategyErrs = multierror.Append(strategyErrs, evalErr)
			continue
		}
		// N-gram coding reconstructs the transition stream directly, so its
		// header is just the first raw outcome; there is no first run to name.
		report.Results = append(
			report.Results,
			finalizeResult(
				result, stream.Len(), 1, cfg.TableOverheadBitsPerSymbol),
		)
	}

	golombResult, evalErr := evaluateGolomb(runs, divisor)
	if evalErr != nil {
		strategyErrs = multierror.Append(strategyErrs, evalErr)
	} else {
		// The Golomb code is fully determined by its divisor; there is no
		// table to transmit, so its overhead estimate is always zero.
		report.Results = append(
			report.Results,
			finalizeResult(golombResult, stream.Len(), headerBits(len(runs)), 0),
		)
	}

	if strategyErrs != nil {
		return nil, strategyErrs
	}

	report.Best = report.Results[0]
	for _, result := range report.Results[1:] {
		if result.NetSavingsPercent > report.Best.NetSavingsPercent {
			report.Best = result
		}
	}

	if cfg.SavingsThreshold > 0 {
		for i := range report.Results {
			if report.Results[i].SavingsPercent >= cfg.SavingsThreshold*100 {
				report.FirstAtThreshold = &report.Results[i]
				break
			}
		}
	}
	return report, nil
}

// Compare analyzes a reference stream (assumed unbiased) and a candidate
// stream with the same configuration and reports the candidate's per-strategy
// compressibility advantage. Both analyses must produce the same strategy
// set; a mismatch returns [skew.ErrMissingStrategy].
func Compare(reference, candidate skew.BitStream, config Config) (*Comparison, error) {
	referenceReport, err := Analyze(reference, config)
	if err != nil {
		return nil, err
	}
	candidateReport, err := Analyze(candidate, config)
	if err != nil {
		return nil, err
	}

	if len(referenceReport.Results) != len(candidateReport.Results) {
		return nil, skew.ErrMissingStrategy.WithMessage(fmt.Sprintf(
			"reference has %d strategies, candidate has %d",
			len(referenceReport.Results), len(candidateReport.Results)))
	}

	comparison := &Comparison{
		Reference: referenceReport,
		Candidate: candidateReport,
	}
	for i, referenceResult := range referenceReport.Results {
		candidateResult := candidateReport.Results[i]
		if candidateResult.Method != referenceResult.Method {
			return nil, skew.ErrMissingStrategy.WithMessage(fmt.Sprintf(
				"strategy %d is %q for the reference but %q for the candidate",
				i, referenceResult.Method, candidateResult.Method))
		}
		comparison.Advantages = append(comparison.Advantages, StrategyAdvantage{
			Method:                  referenceResult.Method,
			ReferenceSavingsPercent: referenceResult.SavingsPercent,
			CandidateSavingsPercent: candidateResult.SavingsPercent,
			AdvantagePercent: candidateResult.SavingsPercent -
				referenceResult.SavingsPercent,
		})
	}
	return comparison, nil
}

// -----------------------------------------------------------------------------

// runCodes holds one Huffman code per run value, trained on the lengths of
// that value's runs only. Strategies use these both for per-run coding and
// for the leftover runs a grouping cannot absorb.
type runCodes struct {
	codes map[bool]huffman.Code
	// distinct is the combined alphabet size of both tables.
	distinct int
	// minBits is the Shannon lower bound on data bits for separate
	// per-value coding.
	minBits float64
}

func buildRunCodes(runs []skew.Run) (runCodes, error) {
	lengthsByValue := map[bool][]string{}
	for _, run := range runs {
		lengthsByValue[run.Value] = append(
			lengthsByValue[run.Value], lengthSymbol(run.Length))
	}

	result := runCodes{codes: map[bool]huffman.Code{}}
	for value, symbols := range lengthsByValue {
		table := huffman.CountSymbols(symbols)
		codec, err := huffman.NewCodec(table)
		if err != nil {
			return runCodes{}, err
		}
		bound, err := entropy.MinBits(table.Counts())
		if err != nil {
			return runCodes{}, err
		}

		result.codes[value] = codec.Codewords()
		result.distinct += table.Distinct()
		result.minBits += bound
	}
	return result, nil
}

// runCost returns the codeword length for a single run under its own
// value's table.
func (rc runCodes) runCost(run skew.Run) (int, error) {
	codeword, found := rc.codes[run.Value][lengthSymbol(run.Length)]
	if !found {
		return 0, skew.ErrUnknownSymbol.WithMessage(fmt.Sprintf(
			"run length %d was not in the training set", run.Length))
	}
	return len(codeword), nil
}

func evaluatePerRun(runs []skew.Run, perValue runCodes) (CompressionResult, error) {
	bits := 0
	for _, run := range runs {
		cost, err := perValue.runCost(run)
		if err != nil {
			return CompressionResult{}, err
		}
		bits += cost
	}

	return CompressionResult{
		Method:          MethodPerRun,
		GroupSize:       1,
		DistinctSymbols: perValue.distinct,
		EncodedBits:     bits,
		EntropyMinBits:  perValue.minBits,
	}, nil
}

func evaluateGrouped(
	runs []skew.Run, groupSize int, perValue runCodes,
) (CompressionResult, error) {
	groups, leftover, err := skew.GroupRuns(runs, groupSize)
	if err != nil {
		return CompressionResult{}, err
	}

	bits := 0
	distinct := 0
	bound := 0.0
	if len(groups) > 0 {
		symbols := make([]string, len(groups))
		for i, group := range groups {
			symbols[i] = groupSymbol(group)
		}

		table := huffman.CountSymbols(symbols)
		codec, err := huffman.NewCodec(table)
		if err != nil {
			return CompressionResult{}, err
		}
		bits, err = codec.EncodedBits(symbols)
		if err != nil {
			return CompressionResult{}, err
		}
		bound, err = entropy.MinBits(table.Counts())
		if err != nil {
			return CompressionResult{}, err
		}
		distinct = table.Distinct()
	}

	for _, run := range leftover {
		cost, err := perValue.runCost(run)
		if err != nil {
			return CompressionResult{}, err
		}
		bits += cost
	}

	return CompressionResult{
		Method:          MethodName(groupSize),
		GroupSize:       groupSize,
		DistinctSymbols: distinct,
		EncodedBits:     bits,
		EntropyMinBits:  bound,
	}, nil
}

func evaluateNGram(
	transitions skew.BitStream, width int,
) (CompressionResult, error) {
	grams, leftover, err := skew.GroupBits(transitions, width)
	if err != nil {
		return CompressionResult{}, err
	}

	bits := 0
	distinct := 0
	bound := 0.0
	if len(grams) > 0 {
		table := huffman.CountSymbols(grams)
		codec, err := huffman.NewCodec(table)
		if err != nil {
			return CompressionResult{}, err
		}
		bits, err = codec.EncodedBits(grams)
		if err != nil {
			return CompressionResult{}, err
		}
		bound, err = entropy.MinBits(table.Counts())
		if err != nil {
			return CompressionResult{}, err
		}
		distinct = table.Distinct()
	}

	// Trailing transition bits that do not fill a gram are stored raw, one
	// bit apiece.
	bits += leftover

	return CompressionResult{
		Method:          NGramMethodName(width),
		GroupSize:       width,
		DistinctSymbols: distinct,
		EncodedBits:     bits,
		EntropyMinBits:  bound,
	}, nil
}

func evaluateGolomb(runs []skew.Run, divisor int) (CompressionResult, error) {
	bits := 0
	lengthCounts := map[int]int{}
	for _, run := range runs {
		cost, err := golomb.EncodedLen(run.Length, divisor)
		if err != nil {
			return CompressionResult{}, err
		}
		bits += cost
		lengthCounts[run.Length]++
	}

	bound := 0.0
	if len(lengthCounts) > 0 {
		counts := make([]int, 0, len(lengthCounts))
		for _, count := range lengthCounts {
			counts = append(counts, count)
		}
		var err error
		bound, err = entropy.MinBits(counts)
		if err != nil {
			return CompressionResult{}, err
		}
	}

	return CompressionResult{
		Method:          MethodGolomb,
		DistinctSymbols: len(lengthCounts),
		EncodedBits:     bits,
		EntropyMinBits:  bound,
	}, nil
}

// finalizeResult fills in the derived figures: the fixed header, ratio,
// savings, and the overhead-adjusted net savings.
func finalizeResult(
	result CompressionResult, streamLength, header, overheadPerSymbol int,
) CompressionResult {
	result.TotalBits = result.EncodedBits + header
	result.Ratio = float64(result.TotalBits) / float64(streamLength)
	result.SavingsPercent = (1 - result.Ratio) * 100
	result.TableOverheadBits = result.DistinctSymbols * overheadPerSymbol
	result.NetSavingsPercent = (1 -
		float64(result.TotalBits+result.TableOverheadBits)/
			float64(streamLength)) * 100
	return result
}

// headerBits is the fixed overhead every run-based strategy pays: one bit
// for the first raw outcome, plus one for the value of the first run when
// there are any runs to describe.
func headerBits(runCount int) int {
	if runCount == 0 {
		return 1
	}
	return 2
}

func lengthSymbol(length int) string {
	return strconv.Itoa(length)
}

func groupSymbol(lengths []int) string {
	parts := make([]string, len(lengths))
	for i, length := range lengths {
		parts[i] = strconv.Itoa(length)
	}
	return strings.Join(parts, ",")
}
