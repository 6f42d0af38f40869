package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGraphFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad_BuildsCSCAndDerivesCSR(t *testing.T) {
	// GIVEN a 3-node fully-connected graph file
	path := writeGraphFile(t, "f 3\n0 1 2\n1 2 0\n2 0 1\nend\n")

	// WHEN it is loaded
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// THEN the feature size and node count come from the header and column count
	if got := g.FeatureSize(); got != 3 {
		t.Errorf("FeatureSize() = %d, want 3", got)
	}
	if got := g.NumNodes(); got != 3 {
		t.Errorf("NumNodes() = %d, want 3", got)
	}
	for c := 0; c < 3; c++ {
		col := g.Column(c)
		if len(col) != 3 {
			t.Errorf("Column(%d) len = %d, want 3", c, len(col))
		}
	}
}

func TestLoad_DerivedCSRMatchesColumnMembership(t *testing.T) {
	// GIVEN a 3-node graph where column 0 lists rows {1,2}, column 1 lists row {2}
	path := writeGraphFile(t, "f 1\n1 2\n2\n\nend\n")

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// THEN row 2's CSR range over [0,2) is non-empty (both columns reference row 2)
	if g.IsRowRangeEmpty(2, 0, 2) {
		t.Error("expected row 2 to have entries in columns [0,2)")
	}
	// AND row 0 never appears as a member of any column, so its CSR range is empty
	if !g.IsRowRangeEmpty(0, 0, 2) {
		t.Error("expected row 0 to have no entries in columns [0,2)")
	}
}

func TestLoad_EmptyColumnsAreValid(t *testing.T) {
	// GIVEN a graph with an isolated node (empty column)
	path := writeGraphFile(t, "f 2\n1\n\n0\nend\n")

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := g.NumNodes(); got != 3 {
		t.Fatalf("NumNodes() = %d, want 3", got)
	}
	if len(g.Column(1)) != 0 {
		t.Errorf("Column(1) len = %d, want 0 (isolated node)", len(g.Column(1)))
	}
}

func TestLoad_RejectsMalformedHeader(t *testing.T) {
	path := writeGraphFile(t, "3\n0 1\nend\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing \"f\" header token")
	}
}

func TestColumnRange_ReturnsZeroCopySubRange(t *testing.T) {
	path := writeGraphFile(t, "f 1\n0 1 2 3 4\n\n\n\n\nend\n")
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := g.ColumnRange(0, 1, 3)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("ColumnRange(0,1,3) = %v, want [1 2]", got)
	}
}
