package huffman

import (
	"sort"
)

// FrequencyTable maps each distinct symbol to the number of times it was
// observed. Symbols are plain strings; callers that count run lengths or
// length tuples render them to strings first so that the table has a single,
// total symbol ordering to break frequency ties with.
type FrequencyTable struct {
	counts map[string]int
	total  int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() FrequencyTable {
	return FrequencyTable{counts: map[string]int{}}
}

// CountSymbols builds a table from an ordered symbol sequence. The input
// order does not affect the counts.
func CountSymbols(symbols []string) FrequencyTable {
	table := NewFrequencyTable()
	for _, symbol := range symbols {
		table.Add(symbol)
	}
	return table
}

// Add records one occurrence of a symbol.
func (table *FrequencyTable) Add(symbol string) {
	if table.counts == nil {
		table.counts = map[string]int{}
	}
	table.counts[symbol]++
	table.total++
}

// Count returns the number of recorded occurrences of a symbol, 0 if the
// symbol was never added.
func (table FrequencyTable) Count(symbol string) int {
	return table.counts[symbol]
}

// Total returns the number of symbols fed in. It always equals the sum of
// all counts.
func (table FrequencyTable) Total() int {
	return table.total
}

// Distinct returns the number of distinct symbols in the table.
func (table FrequencyTable) Distinct() int {
	return len(table.counts)
}

// Symbols returns the distinct symbols in sorted order. This is the
// canonical iteration order for deterministic code construction.
func (table FrequencyTable) Symbols() []string {
	symbols := make([]string, 0, len(table.counts))
	for symbol := range table.counts {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Counts returns the occurrence counts in [FrequencyTable.Symbols] order.
// Every count is strictly positive.
func (table FrequencyTable) Counts() []int {
	symbols := table.Symbols()
	counts := make([]int, len(symbols))
	for i, symbol := range symbols {
		counts[i] = table.counts[symbol]
	}
	return counts
}
