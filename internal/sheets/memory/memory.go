// Package memory implements the sheets ports on an in-process grid. It backs
// the dev backend and every aggregator test; behavior mirrors the Google
// adapter closely enough that services cannot tell them apart.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"finboard/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]string
	// order preserves tab creation order for ListTabs
	order []string
}

var _ sheets.Store = (*Store)(nil)

func New() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

// Seed replaces the contents of a tab, creating it if needed.
func (s *Store) Seed(tab string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[tab]; !ok {
		s.order = append(s.order, tab)
	}
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = append([]string(nil), r...)
	}
	s.tabs[tab] = grid
}

func (s *Store) ReadRange(_ context.Context, tab, a1Range string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, ok := s.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("read %s!%s: %w", tab, a1Range, sheets.ErrTabNotFound)
	}
	span, err := parseA1(a1Range)
	if err != nil {
		return nil, fmt.Errorf("read %s!%s: %w", tab, a1Range, err)
	}

	var out [][]string
	for i, row := range grid {
		if i < span.firstRow() {
			continue
		}
		if span.endRow >= 0 && i > span.endRow {
			break
		}
		out = append(out, sliceColumns(row, span.startCol, span.endCol))
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, tab, a1Range string, row []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("append %s!%s: %w", tab, a1Range, sheets.ErrTabNotFound)
	}
	span, err := parseA1(a1Range)
	if err != nil {
		return fmt.Errorf("append %s!%s: %w", tab, a1Range, err)
	}

	// Like the Sheets API, the append lands after the last occupied row of
	// the addressed column group, so independent column groups on one tab
	// grow independently.
	target := 0
	for i, r := range grid {
		for c := span.startCol; c <= span.endCol && c < len(r); c++ {
			if strings.TrimSpace(r[c]) != "" {
				target = i + 1
				break
			}
		}
	}
	s.writeCells(tab, target, span.startCol, row)
	return nil
}

func (s *Store) UpdateRow(_ context.Context, tab, a1Range string, row []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tabs[tab]; !ok {
		return fmt.Errorf("update %s!%s: %w", tab, a1Range, sheets.ErrTabNotFound)
	}
	span, err := parseA1(a1Range)
	if err != nil {
		return fmt.Errorf("update %s!%s: %w", tab, a1Range, err)
	}
	if span.startRow < 0 {
		return fmt.Errorf("update %s!%s: range must address a row", tab, a1Range)
	}
	s.writeCells(tab, span.startRow, span.startCol, row)
	return nil
}

func (s *Store) ClearRange(_ context.Context, tab, a1Range string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("clear %s!%s: %w", tab, a1Range, sheets.ErrTabNotFound)
	}
	span, err := parseA1(a1Range)
	if err != nil {
		return fmt.Errorf("clear %s!%s: %w", tab, a1Range, err)
	}
	for i := range grid {
		if i < span.firstRow() {
			continue
		}
		if span.endRow >= 0 && i > span.endRow {
			break
		}
		for c := span.startCol; c <= span.endCol && c < len(grid[i]); c++ {
			grid[i][c] = ""
		}
	}
	return nil
}

func (s *Store) ListTabs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

func (s *Store) CreateTab(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[name]; ok {
		return fmt.Errorf("create tab %q: already exists", name)
	}
	s.order = append(s.order, name)
	s.tabs[name] = [][]string{append([]string(nil), header...)}
	return nil
}

// writeCells writes row starting at (rowIdx, colIdx), growing the grid as
// needed. Caller holds the lock.
func (s *Store) writeCells(tab string, rowIdx, colIdx int, row []any) {
	grid := s.tabs[tab]
	for len(grid) <= rowIdx {
		grid = append(grid, nil)
	}
	need := colIdx + len(row)
	if len(grid[rowIdx]) < need {
		padded := make([]string, need)
		copy(padded, grid[rowIdx])
		grid[rowIdx] = padded
	}
	for i, v := range row {
		grid[rowIdx][colIdx+i] = strings.TrimSpace(fmt.Sprint(v))
	}
	s.tabs[tab] = grid
}

func sliceColumns(row []string, start, end int) []string {
	var out []string
	for c := start; c <= end && c < len(row); c++ {
		out = append(out, strings.TrimSpace(row[c]))
	}
	// Trim trailing empties the way the Sheets API does.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
