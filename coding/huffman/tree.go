package huffman

import (
	"container/heap"

	"github.com/dargueta/skew"
)

// nullNode marks an absent child index in the arena.
const nullNode = -1

type node struct {
	frequency int
	symbol    string
	leaf      bool
	left      int
	right     int
	// order is the construction sequence number, used to break frequency
	// ties deterministically. Leaves get theirs in sorted symbol order.
	order int
}

// Tree is a Huffman tree stored as an arena of nodes addressed by index.
// The zero value is an empty tree; usable trees come from [BuildTree].
type Tree struct {
	nodes []node
	root  int
}

// treeBuilder is a priority queue of arena indices keyed by node frequency,
// with the construction sequence number as the tie-break.
type treeBuilder struct {
	arena []node
	queue []int
}

func (builder *treeBuilder) Len() int {
	return len(builder.queue)
}

func (builder *treeBuilder) Less(i, j int) bool {
	left := builder.arena[builder.queue[i]]
	right := builder.arena[builder.queue[j]]
	if left.frequency != right.frequency {
		return left.frequency < right.frequency
	}
	return left.order < right.order
}

func (builder *treeBuilder) Swap(i, j int) {
	builder.queue[i], builder.queue[j] = builder.queue[j], builder.queue[i]
}

func (builder *treeBuilder) Push(x any) {
	builder.queue = append(builder.queue, x.(int))
}

func (builder *treeBuilder) Pop() any {
	last := builder.queue[len(builder.queue)-1]
	builder.queue = builder.queue[:len(builder.queue)-1]
	return last
}

// BuildTree constructs the Huffman tree for a frequency table by repeatedly
// merging the two lowest-frequency unmerged nodes until one root remains.
// A table with a single symbol yields a tree of just that leaf; see the
// package documentation for how its codeword is assigned. A table with no
// symbols returns [skew.ErrEmptyAlphabet].
func BuildTree(table FrequencyTable) (Tree, error) {
	if table.Distinct() == 0 {
		return Tree{}, skew.ErrEmptyAlphabet.WithMessage(
			"cannot build a code for an empty frequency table")
	}

	builder := &treeBuilder{}
	for _, symbol := range table.Symbols() {
		builder.arena = append(builder.arena, node{
			frequency: table.Count(symbol),
			symbol:    symbol,
			leaf:      true,
			left:      nullNode,
			right:     nullNode,
			order:     len(builder.arena),
		})
		builder.queue = append(builder.queue, len(builder.arena)-1)
	}
	heap.Init(builder)

	for builder.Len() > 1 {
		left := heap.Pop(builder).(int)
		right := heap.Pop(builder).(int)
		builder.arena = append(builder.arena, node{
			frequency: builder.arena[left].frequency + builder.arena[right].frequency,
			left:      left,
			right:     right,
			order:     len(builder.arena),
		})
		heap.Push(builder, len(builder.arena)-1)
	}

	return Tree{nodes: builder.arena, root: builder.queue[0]}, nil
}

// Codes extracts the codeword table from the tree with an explicit
// stack-based walk, assigning "0" on every left edge and "1" on every right
// edge. An empty tree yields an empty table.
func (tree Tree) Codes() Code {
	codes := Code{}
	if len(tree.nodes) == 0 {
		return codes
	}
	if tree.nodes[tree.root].leaf {
		codes[tree.nodes[tree.root].symbol] = "0"
		return codes
	}

	type frame struct {
		index  int
		prefix string
	}
	stack := []frame{{tree.root, ""}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		current := tree.nodes[top.index]
		if current.leaf {
			codes[current.symbol] = top.prefix
			continue
		}
		stack = append(stack, frame{current.right, top.prefix + "1"})
		stack = append(stack, frame{current.left, top.prefix + "0"})
	}
	return codes
}

// Decode walks the tree bit by bit, emitting a symbol and resetting to the
// root each time a leaf is reached. Returns [skew.ErrMalformedStream] if the
// stream contains a character other than '0'/'1' or if trailing bits do not
// resolve to a complete codeword.
func (tree Tree) Decode(bits string) ([]string, error) {
	symbols := []string{}
	if len(tree.nodes) == 0 {
		if len(bits) > 0 {
			return nil, skew.ErrMalformedStream.WithMessage(
				"cannot decode with an empty tree")
		}
		return symbols, nil
	}

	// Single-leaf tree: the lone symbol's codeword is "0".
	if tree.nodes[tree.root].leaf {
		for i := 0; i < len(bits); i++ {
			if bits[i] != '0' {
				return nil, skew.ErrMalformedStream.WithMessage(
					"unexpected bit for a single-symbol code")
			}
			symbols = append(symbols, tree.nodes[tree.root].symbol)
		}
		return symbols, nil
	}

	current := tree.root
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			current = tree.nodes[current].left
		case '1':
			current = tree.nodes[current].right
		default:
			return nil, skew.ErrMalformedStream.WithMessage(
				"stream contains a character other than '0' or '1'")
		}

		if tree.nodes[current].leaf {
			symbols = append(symbols, tree.nodes[current].symbol)
			current = tree.root
		}
	}

	if current != tree.root {
		return nil, skew.ErrMalformedStream.WithMessage(
			"trailing bits do not form a complete codeword")
	}
	return symbols, nil
}
