package features

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFeatureFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.txt")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad_ConvertsDenseRowsToSparseColumnIndices(t *testing.T) {
	// GIVEN three dense 0/1 rows
	path := writeFeatureFile(t, "0 0 1 0 1 0\n1 0 0 1 1 1\n1 1 0 0 0 1\n")

	// WHEN loaded
	nf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// THEN each row holds the nonzero column indices in order
	if got := nf.NumNodes(); got != 3 {
		t.Fatalf("NumNodes() = %d, want 3", got)
	}
	assertRow(t, nf, 0, []int{2, 4})
	assertRow(t, nf, 1, []int{0, 3, 4, 5})
	assertRow(t, nf, 2, []int{0, 1, 5})
}

func assertRow(t *testing.T, nf *NodeFeatures, id int, want []int) {
	t.Helper()
	got := nf.Row(id)
	if len(got) != len(want) {
		t.Fatalf("Row(%d) = %v, want %v", id, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Row(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestLoad_StartAddrsHaveATrailingSentinel(t *testing.T) {
	// GIVEN rows with 2, 4, and 3 nonzero entries respectively
	path := writeFeatureFile(t, "0 0 1 0 1 0\n1 0 0 1 1 1\n1 1 0 0 0 1\n")
	nf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// THEN each row's start address accumulates 4 bytes per nonzero entry
	if got := nf.StartAddr(0); got != 0 {
		t.Errorf("StartAddr(0) = %d, want 0", got)
	}
	if got := nf.StartAddr(1); got != 8 {
		t.Errorf("StartAddr(1) = %d, want 8 (2 entries * 4 bytes)", got)
	}
	if got := nf.StartAddr(2); got != 24 {
		t.Errorf("StartAddr(2) = %d, want 24 (2+4 entries * 4 bytes)", got)
	}
	// AND the sentinel entry equals the table's total byte size
	if got := nf.TotalBytes(); got != 36 {
		t.Errorf("TotalBytes() = %d, want 36 (2+4+3 entries * 4 bytes)", got)
	}
	if got := nf.RowByteLen(2); got != 12 {
		t.Errorf("RowByteLen(2) = %d, want 12 (3 entries * 4 bytes)", got)
	}
}

func TestLoad_EmptyRowIsAllZeros(t *testing.T) {
	path := writeFeatureFile(t, "0 0 0\n")
	nf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(nf.Row(0)); got != 0 {
		t.Errorf("Row(0) len = %d, want 0", got)
	}
	if got := nf.RowByteLen(0); got != 0 {
		t.Errorf("RowByteLen(0) = %d, want 0", got)
	}
}
