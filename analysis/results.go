package analysis

// CompressionResult reports how one strategy fared against a stream. All bit
// counts are measurements of what an encoder following the strategy would
// emit; nothing is persisted.
type CompressionResult struct {
	// Method identifies the strategy. See [MethodName] and [MethodGolomb].
	Method string `csv:"method"`
	// GroupSize is the grouping width for grouped Huffman strategies, the
	// chunk width for n-gram strategies, 1 for per-run Huffman, and 0 for
	// Golomb coding.
	GroupSize int `csv:"group_size"`
	// DistinctSymbols is the size of the alphabet the strategy built a code
	// for: distinct run lengths for per-run and Golomb, distinct tuples for
	// grouped Huffman, distinct chunks for n-grams.
	DistinctSymbols int `csv:"distinct_symbols"`
	// EncodedBits counts the data bits only.
	EncodedBits int `csv:"encoded_bits"`
	// TotalBits adds the fixed header: the first raw outcome, plus the value
	// of the first run for the run-based strategies.
	TotalBits int `csv:"total_bits"`
	// Ratio is TotalBits divided by the original stream length in bits.
	Ratio float64 `csv:"compression_ratio"`
	// SavingsPercent is (1 - Ratio) * 100.
	SavingsPercent float64 `csv:"savings_percent"`
	// EntropyMinBits is the Shannon lower bound on data bits for this
	// strategy's frequency model. The constructed code can never beat it and
	// usually cannot reach it.
	EntropyMinBits float64 `csv:"entropy_min_bits"`
	// TableOverheadBits estimates the cost of transmitting the code table:
	// DistinctSymbols times the configured per-symbol cost. Golomb coding
	// has no table and always reports 0.
	TableOverheadBits int `csv:"table_overhead_bits"`
	// NetSavingsPercent is the savings after charging TableOverheadBits.
	NetSavingsPercent float64 `csv:"net_savings_percent"`
}

// Report is the full outcome of analyzing one stream: a CompressionResult
// per strategy plus the stream statistics the strategies were tuned with.
type Report struct {
	// StreamLength is the number of outcomes in the analyzed stream.
	StreamLength int
	// TransitionCount is the length of the derived transition stream.
	TransitionCount int
	// AlternationRate is the fraction of transitions that are changes.
	AlternationRate float64
	// RunCount is the number of maximal runs in the transition stream.
	RunCount int
	// GolombM is the divisor the Golomb strategy used, whether configured or
	// derived from the mean run length.
	GolombM int
	// Results holds one entry per strategy: run group sizes ascending, then
	// n-gram widths ascending, then the Golomb strategy last. This is also
	// the preference order used for FirstAtThreshold.
	Results []CompressionResult
	// Best is the strategy with the highest net savings.
	Best CompressionResult
	// FirstAtThreshold points at the first strategy in preference order
	// whose raw savings reached the configured threshold, or nil if none
	// did or no threshold was set.
	FirstAtThreshold *CompressionResult
}

// Result looks up a strategy's result by method identifier.
func (report *Report) Result(method string) (CompressionResult, bool) {
	for _, result := range report.Results {
		if result.Method == method {
			return result, true
		}
	}
	return CompressionResult{}, false
}

// StrategyAdvantage is the bias-detection signal for a single strategy: how
// much more compressible the candidate stream is than the reference.
type StrategyAdvantage struct {
	Method                  string  `csv:"method"`
	ReferenceSavingsPercent float64 `csv:"reference_savings_percent"`
	CandidateSavingsPercent float64 `csv:"candidate_savings_percent"`
	// AdvantagePercent is candidate savings minus reference savings. A
	// consistently positive value across group sizes indicates non-random
	// structure in the candidate.
	AdvantagePercent float64 `csv:"advantage_percent"`
}

// Comparison holds the per-strategy advantage of a candidate stream over a
// reference stream, along with both full reports.
type Comparison struct {
	Reference  *Report
	Candidate  *Report
	Advantages []StrategyAdvantage
}

// Advantage looks up the advantage record for a strategy.
func (comparison *Comparison) Advantage(method string) (StrategyAdvantage, bool) {
	for _, advantage := range comparison.Advantages {
		if advantage.Method == method {
			return advantage, true
		}
	}
	return StrategyAdvantage{}, false
}

// BestAdvantage returns the strategy where the candidate most outperformed
// the reference. Ties keep the earlier strategy.
func (comparison *Comparison) BestAdvantage() StrategyAdvantage {
	best := comparison.Advantages[0]
	for _, advantage := range comparison.Advantages[1:] {
		if advantage.AdvantagePercent > best.AdvantagePercent {
			best = advantage
		}
	}
	return best
}
