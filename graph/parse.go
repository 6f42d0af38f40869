package graph

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Load reads a graph file and builds its CSC/CSR representation.
//
// The file format is:
//
//	f <feature_size>
//	<row indices for column 0, whitespace separated>
//	<row indices for column 1, whitespace separated>
//	...
//	end
//
// The first line declares the layer-0 feature dimension. Each subsequent
// line up to the terminating "end"/"END" line lists, for one CSC column,
// the node indices of the rows contributing to it.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("graph file %s is empty", path)
	}
	featureSize, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("parsing graph file %s: %w", path, err)
	}

	var csc []ColumnSet
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "end") || strings.HasPrefix(line, "END") {
			break
		}
		col, err := parseColumn(line)
		if err != nil {
			return nil, fmt.Errorf("parsing graph file %s, column %d: %w", path, len(csc), err)
		}
		csc = append(csc, col)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph file %s: %w", path, err)
	}
	for c, col := range csc {
		for _, row := range col {
			if row < 0 || row >= len(csc) {
				return nil, fmt.Errorf("graph file %s: column %d references node %d, but the file declares only %d nodes", path, c, row, len(csc))
			}
		}
	}

	return newFromCSC(csc, featureSize), nil
}

func parseHeader(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "f" {
		return 0, fmt.Errorf(`header line must be "f <feature_size>", got %q`, line)
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("invalid feature size %q: %w", fields[1], err)
	}
	return size, nil
}

func parseColumn(line string) (ColumnSet, error) {
	fields := strings.Fields(line)
	seen := make(map[int]struct{}, len(fields))
	col := make(ColumnSet, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid node index %q: %w", field, err)
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		col = append(col, n)
	}
	sort.Ints(col)
	return col, nil
}
