package skew

// Run represents a single maximal block of consecutive identical values
// within a stream.
type Run struct {
	// Value is the boolean value repeated throughout the run.
	Value bool
	// Length gives the number of consecutive occurrences. A valid run always
	// has this be 1 or greater.
	Length int
}

// Runs partitions a stream into maximal runs, scanning left to right in one
// pass. Adjacent runs in the result never share a value, and the run lengths
// always sum to exactly the stream length. An empty stream yields no runs.
func Runs(stream BitStream) []Run {
	if stream.Len() == 0 {
		return []Run{}
	}

	runs := []Run{}
	currentValue := stream.At(0)
	currentLength := 1

	for i := 1; i < stream.Len(); i++ {
		value := stream.At(i)
		if value == currentValue {
			currentLength++
			continue
		}
		runs = append(runs, Run{Value: currentValue, Length: currentLength})
		currentValue = value
		currentLength = 1
	}

	return append(runs, Run{Value: currentValue, Length: currentLength})
}

// GroupRuns partitions a run sequence into fixed-size tuples of consecutive
// run lengths plus a leftover of the trailing `len(runs) % groupSize` runs.
// Only the lengths go into the tuples; the leftover keeps whole runs so each
// one can still be coded individually against its own value's table.
//
// Concatenating the tuples' elements followed by the leftover lengths, in
// order, reproduces the input lengths exactly. A group size of 1 is the
// degenerate per-run case and never has a leftover. Group sizes below 1
// return [ErrArgumentOutOfRange].
func GroupRuns(runs []Run, groupSize int) ([][]int, []Run, error) {
	if groupSize < 1 {
		return nil, nil, ErrArgumentOutOfRange.WithMessage(
			"group size must be at least 1")
	}

	groupCount := len(runs) / groupSize
	groups := make([][]int, groupCount)
	for g := 0; g < groupCount; g++ {
		group := make([]int, groupSize)
		for i := 0; i < groupSize; i++ {
			group[i] = runs[g*groupSize+i].Length
		}
		groups[g] = group
	}

	leftover := make([]Run, len(runs)-groupCount*groupSize)
	copy(leftover, runs[groupCount*groupSize:])
	return groups, leftover, nil
}

// RunLengths extracts just the length of each run, in order.
func RunLengths(runs []Run) []int {
	lengths := make([]int, len(runs))
	for i, run := range runs {
		lengths[i] = run.Length
	}
	return lengths
}

// MeanRunLength returns the average run length, or 0 for an empty sequence.
func MeanRunLength(runs []Run) float64 {
	if len(runs) == 0 {
		return 0
	}

	total := 0
	for _, run := range runs {
		total += run.Length
	}
	return float64(total) / float64(len(runs))
}
