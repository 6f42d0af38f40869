package features

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads a dense 0/1 feature file, one row per line, and converts
// each row to its sparse (nonzero column index) form.
//
// Example input:
//
//	0 0 1 0 1 0
//	1 0 0 1 1 1
//	1 1 0 0 0 1
func Load(path string) (*NodeFeatures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feature file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var rows [][]int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("parsing feature file %s, row %d: %w", path, len(rows), err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feature file %s: %w", path, err)
	}

	return newFromRows(rows), nil
}

func parseRow(line string) ([]int, error) {
	fields := strings.Fields(line)
	row := make([]int, 0, len(fields))
	for col, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid entry %q: %w", field, err)
		}
		if v != 0 {
			row = append(row, col)
		}
	}
	return row, nil
}
