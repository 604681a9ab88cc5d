package memory

import (
	"fmt"
	"strconv"
	"strings"
)

// span is a parsed A1 range with 0-based inclusive bounds. A row of -1 means
// unbounded on that side ("A:N" addresses whole columns).
type span struct {
	startCol, endCol int
	startRow, endRow int
}

func (s span) firstRow() int {
	if s.startRow < 0 {
		return 0
	}
	return s.startRow
}

// parseA1 understands the range shapes the services use: "A:N", "A2:G2",
// "B3", "E5:H5".
func parseA1(r string) (span, error) {
	parts := strings.SplitN(r, ":", 2)
	startCol, startRow, err := parseCell(parts[0])
	if err != nil {
		return span{}, err
	}
	if len(parts) == 1 {
		return span{startCol: startCol, endCol: startCol, startRow: startRow, endRow: startRow}, nil
	}
	endCol, endRow, err := parseCell(parts[1])
	if err != nil {
		return span{}, err
	}
	return span{startCol: startCol, endCol: endCol, startRow: startRow, endRow: endRow}, nil
}

// parseCell splits "H10" into column 7 and row 9; a bare "H" yields row -1.
func parseCell(cell string) (col, row int, err error) {
	cell = strings.TrimSpace(strings.ToUpper(cell))
	if cell == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("cell %q: missing column letter", cell)
	}
	col = 0
	for _, c := range cell[:i] {
		col = col*26 + int(c-'A'+1)
	}
	col--
	if i == len(cell) {
		return col, -1, nil
	}
	n, err := strconv.Atoi(cell[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("cell %q: bad row number", cell)
	}
	return col, n - 1, nil
}
