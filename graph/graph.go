// Package graph provides the adjacency structure (CSC/CSR) the sliding-window
// iterator walks: per-column and per-row ordered node-index sets, derived
// from a text graph file.
package graph

import "sort"

// ColumnSet is an ordered, deduplicated set of node indices: the
// contents of one CSC column or one CSR row. It is stored as a sorted
// slice rather than a tree so that sub-ranges can be returned as
// zero-copy slice views (see Range) instead of copied collections.
type ColumnSet []int

// Range returns the zero-copy sub-slice of s whose values lie in
// [start, end), located via binary search in O(log n).
func (s ColumnSet) Range(start, end int) ColumnSet {
	lo := sort.SearchInts(s, start)
	hi := sort.SearchInts(s, end)
	if hi < lo {
		hi = lo
	}
	return s[lo:hi]
}

// Graph is the accelerator's view of the input graph: CSC (column ->
// contributing rows) built directly from the file, and CSR (row ->
// columns it contributes to) derived from it at load time.
type Graph struct {
	csc         []ColumnSet
	csr         []ColumnSet
	featureSize int
}

// FeatureSize returns the layer-0 input feature dimension declared in the
// graph file's header line.
func (g *Graph) FeatureSize() int { return g.featureSize }

// NumNodes returns the node count (number of CSC columns).
func (g *Graph) NumNodes() int { return len(g.csc) }

// Column returns the full ordered set of rows contributing to column c.
func (g *Graph) Column(c int) ColumnSet { return g.csc[c] }

// ColumnRange returns the zero-copy sub-range of column c's rows lying in
// [start, end).
func (g *Graph) ColumnRange(c, start, end int) ColumnSet {
	return g.csc[c].Range(start, end)
}

// IsRowRangeEmpty reports whether row r has no columns in [start, end),
// in O(log n) time via the CSR index.
func (g *Graph) IsRowRangeEmpty(r, start, end int) bool {
	return len(g.csr[r].Range(start, end)) == 0
}

// newFromCSC builds a Graph from a fully-populated CSC adjacency and
// derives its CSR dual.
func newFromCSC(csc []ColumnSet, featureSize int) *Graph {
	g := &Graph{csc: csc, featureSize: featureSize}
	g.generateCSR()
	return g
}

// generateCSR rebuilds the CSR view from the current CSC view: csr[r]
// gets column index c for every c such that r is a member of csc[c].
func (g *Graph) generateCSR() {
	buckets := make([][]int, len(g.csc))
	for c, rows := range g.csc {
		for _, r := range rows {
			buckets[r] = append(buckets[r], c)
		}
	}
	csr := make([]ColumnSet, len(buckets))
	for r, cols := range buckets {
		sort.Ints(cols)
		csr[r] = ColumnSet(cols)
	}
	g.csr = csr
}
