// Package huffman builds minimal-redundancy prefix codes from observed symbol
// frequencies and encodes or decodes symbol sequences with them.
//
// The construction is the classic bottom-up merge: every distinct symbol
// starts as a leaf weighted by its frequency, and the two lightest unmerged
// nodes are repeatedly joined under a new parent until a single root remains.
// Reading off the left/right edges as 0/1 then yields, for every leaf, a
// codeword no other codeword is a prefix of. Frequent symbols end up near the
// root with short codewords, which is what drives the per-symbol cost below
// one bit times the codeword length you would need for a fixed-width code.
//
// Two details matter for how this package is used by the analysis layer:
//
// Determinism. Huffman construction has free choices whenever frequencies
// tie, and different choices yield different (equally optimal) codes. Here
// leaves enter the priority queue in sorted symbol order and every node
// carries a construction sequence number used as the tie-break, so building
// a code twice from the same counts always produces byte-identical codewords.
// The comparison analysis relies on this: two streams are only comparable if
// the code each one gets is a pure function of its contents.
//
// The degenerate alphabet. A frequency table with exactly one distinct
// symbol cannot produce a two-child tree, and a zero-bit codeword would make
// the symbol count unrecoverable. The single symbol is assigned the one-bit
// codeword "0" instead, matching the cost accounting used everywhere else.
//
// The tree is stored as an arena of nodes addressed by index rather than as
// linked node objects. Codeword extraction and decoding walk indices with an
// explicit stack, so a maximally skewed tree over a large alphabet cannot
// exhaust the goroutine stack.
package huffman
