// Package features holds per-node feature rows, stored sparsely (as the
// column indices of nonzero entries) after being parsed from a dense
// 0/1 text format.
package features

// NodeFeatures is a CSR-like sparse encoding of a dense 0/1 feature
// matrix: one row per node, each row holding the column indices where the
// dense row was nonzero.
type NodeFeatures struct {
	rows [][]int

	// startAddrs holds len(rows)+1 entries: startAddrs[i] is the byte
	// address at which node i's feature row begins in the simulated
	// memory layout, and startAddrs[len(rows)] is the total byte size of
	// the table (the sentinel that makes the last row's length
	// computable the same way as every other row's).
	startAddrs []uint64
}

// bytesPerIndex is the simulated on-disk width of one nonzero feature
// index: accelerator memory addressing works in 4-byte words.
const bytesPerIndex = 4

// NumNodes returns the number of feature rows.
func (f *NodeFeatures) NumNodes() int { return len(f.rows) }

// Row returns the sparse (nonzero column index) representation of node
// id's feature row.
func (f *NodeFeatures) Row(id int) []int { return f.rows[id] }

// StartAddr returns the byte address at which node id's row begins.
func (f *NodeFeatures) StartAddr(id int) uint64 { return f.startAddrs[id] }

// RowByteLen returns the byte length of node id's row: the distance
// between its start address and the next row's (or the table's total
// size, for the last row).
func (f *NodeFeatures) RowByteLen(id int) uint64 { return f.startAddrs[id+1] - f.startAddrs[id] }

// TotalBytes returns the total simulated byte size of the feature table.
func (f *NodeFeatures) TotalBytes() uint64 { return f.startAddrs[len(f.rows)] }

func newFromRows(rows [][]int) *NodeFeatures {
	startAddrs := make([]uint64, len(rows)+1)
	var addr uint64
	for i, row := range rows {
		startAddrs[i] = addr
		addr += uint64(len(row)) * bytesPerIndex
	}
	startAddrs[len(rows)] = addr
	return &NodeFeatures{rows: rows, startAddrs: startAddrs}
}
