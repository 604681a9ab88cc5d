package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"finboard/internal/core"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
)

// AddTransaction validates, assigns a fresh id and appends the row. The
// returned transaction carries the assigned id.
func (s *Service) AddTransaction(ctx context.Context, tx core.MoneyTransaction) (core.MoneyTransaction, error) {
	if err := tx.Validate(); err != nil {
		return core.MoneyTransaction{}, fmt.Errorf("validate transaction: %w", err)
	}
	tx.ID = uuid.NewString()
	if err := s.store.AppendRow(ctx, s.tabs.Transactions, "A:H", txRow(tx)); err != nil {
		return core.MoneyTransaction{}, fmt.Errorf("append transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction rewrites the row identified by id, keeping the id itself
// in place.
func (s *Service) UpdateTransaction(ctx context.Context, id string, tx core.MoneyTransaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	row, err := s.resolveRow(ctx, id)
	if err != nil {
		return err
	}
	tx.ID = id
	rng := fmt.Sprintf("A%d:H%d", row, row)
	if err := s.store.UpdateRow(ctx, s.tabs.Transactions, rng, txRow(tx)); err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}
	return nil
}

// DeleteTransaction blanks the row identified by id. Cleared rows are skipped
// on read, so the sheet keeps its row numbering stable for older positional
// ids.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	row, err := s.resolveRow(ctx, id)
	if err != nil {
		return err
	}
	rng := fmt.Sprintf("A%d:H%d", row, row)
	if err := s.store.ClearRange(ctx, s.tabs.Transactions, rng); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// resolveRow maps an id to its 1-based sheet row. Ids match the hidden id
// column; positional "mtx-N" ids are accepted for rows written before that
// column existed.
func (s *Service) resolveRow(ctx context.Context, id string) (int, error) {
	rows, err := s.store.ReadRange(ctx, s.tabs.Transactions, "A:H")
	if err != nil {
		return 0, fmt.Errorf("resolve transaction %s: %w", id, err)
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cell(row, colTxID) == id {
			return i + 1, nil
		}
	}
	if n, ok := strings.CutPrefix(id, "mtx-"); ok {
		i, err := strconv.Atoi(n)
		if err == nil && i >= 1 && i < len(rows) && cell(rows[i], colTxID) == "" && cell(rows[i], colTxDate) != "" {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("resolve transaction %s: %w", id, ErrTransactionNotFound)
}

func txRow(tx core.MoneyTransaction) []any {
	return []any{tx.Date, string(tx.Type), tx.Category, tx.Amount, tx.FromAccount, tx.ToAccount, tx.Note, tx.ID}
}

// categoryColumn maps a transaction type to its column on the categories
// tab: expenses in A, income in B.
func categoryColumn(t core.TransactionType) (string, int, error) {
	switch t {
	case core.Expense:
		return "A", 0, nil
	case core.Income:
		return "B", 1, nil
	}
	return "", 0, fmt.Errorf("category column for %q: %w", t, core.ErrInvalidType)
}

// AddCategory appends a name to the type's column, at the first empty row.
func (s *Service) AddCategory(ctx context.Context, name string, t core.TransactionType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyCategory
	}
	col, colIdx, err := categoryColumn(t)
	if err != nil {
		return err
	}
	rows, err := s.store.ReadRange(ctx, s.tabs.Categories, "A:B")
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}

	next := len(rows)
	if next == 0 {
		next = 1 // leave row 1 for the header
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		v := cell(row, colIdx)
		if strings.EqualFold(v, name) {
			return fmt.Errorf("add category %q: %w", name, ErrCategoryExists)
		}
		if v == "" {
			next = min(next, i)
		}
	}

	rng := fmt.Sprintf("%s%d", col, next+1)
	if err := s.store.UpdateRow(ctx, s.tabs.Categories, rng, []any{name}); err != nil {
		return fmt.Errorf("add category %q: %w", name, err)
	}
	return nil
}

// UpdateCategory renames an entry in place. Transactions keep their old
// category text; renames are label-level only.
func (s *Service) UpdateCategory(ctx context.Context, oldName, newName string, t core.TransactionType) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return core.ErrEmptyCategory
	}
	col, colIdx, err := categoryColumn(t)
	if err != nil {
		return err
	}
	rows, err := s.store.ReadRange(ctx, s.tabs.Categories, "A:B")
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}

	target := -1
	for i, row := range rows {
		if i == 0 {
			continue
		}
		v := cell(row, colIdx)
		if strings.EqualFold(v, oldName) {
			target = i
		} else if strings.EqualFold(v, newName) {
			return fmt.Errorf("rename category to %q: %w", newName, ErrCategoryExists)
		}
	}
	if target < 0 {
		return fmt.Errorf("rename category %q: %w", oldName, ErrCategoryNotFound)
	}

	rng := fmt.Sprintf("%s%d", col, target+1)
	if err := s.store.UpdateRow(ctx, s.tabs.Categories, rng, []any{newName}); err != nil {
		return fmt.Errorf("rename category %q: %w", oldName, err)
	}
	return nil
}

// DeleteCategory removes an entry and compacts its column so the remaining
// names stay contiguous.
func (s *Service) DeleteCategory(ctx context.Context, name string, t core.TransactionType) error {
	col, colIdx, err := categoryColumn(t)
	if err != nil {
		return err
	}
	rows, err := s.store.ReadRange(ctx, s.tabs.Categories, "A:B")
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}

	remaining := []string{}
	found := false
	for i, row := range rows {
		if i == 0 {
			continue
		}
		v := cell(row, colIdx)
		if v == "" {
			continue
		}
		if strings.EqualFold(v, name) {
			found = true
			continue
		}
		remaining = append(remaining, v)
	}
	if !found {
		return fmt.Errorf("delete category %q: %w", name, ErrCategoryNotFound)
	}

	if err := s.store.ClearRange(ctx, s.tabs.Categories, fmt.Sprintf("%s2:%s", col, col)); err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	for i, v := range remaining {
		rng := fmt.Sprintf("%s%d", col, i+2)
		if err := s.store.UpdateRow(ctx, s.tabs.Categories, rng, []any{v}); err != nil {
			return fmt.Errorf("delete category %q: rewrite column: %w", name, err)
		}
	}
	return nil
}
