// Package setup creates the money-manager tabs on first run and reports
// whether the spreadsheet schema is in place.
package setup

import (
	"context"
	"fmt"

	"finboard/internal/core"
	"finboard/internal/ledger"
	"finboard/internal/sheets"
)

var (
	accountsHeader     = []string{"NAME", "CATEGORY", "LOGO URL", "INITIAL BALANCE", "CURRENT BALANCE"}
	transactionsHeader = []string{"DATE", "TYPE", "CATEGORY", "AMOUNT", "FROM ACCOUNT", "TO ACCOUNT", "NOTE", "ID"}
	categoriesHeader   = []string{"EXPENSE", "INCOME"}
)

type Manager struct {
	store sheets.Store
	tabs  ledger.Tabs
}

func NewManager(store sheets.Store, tabs ledger.Tabs) *Manager {
	return &Manager{store: store, tabs: tabs}
}

// Initialized reports whether all three ledger tabs exist.
func (m *Manager) Initialized(ctx context.Context) (bool, error) {
	existing, err := m.store.ListTabs(ctx)
	if err != nil {
		return false, fmt.Errorf("list tabs: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	return have[m.tabs.Accounts] && have[m.tabs.Transactions] && have[m.tabs.Categories], nil
}

// Bootstrap ensures the three ledger tabs exist, returning the names it
// created. Idempotent: existing tabs are left untouched, whatever their
// contents. The categories tab is seeded with the default taxonomy so the
// dashboard has something to offer before the first edit.
func (m *Manager) Bootstrap(ctx context.Context) ([]string, error) {
	existing, err := m.store.ListTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var created []string
	create := func(name string, header []string) error {
		if have[name] {
			return nil
		}
		if err := m.store.CreateTab(ctx, name, header); err != nil {
			return fmt.Errorf("create tab %s: %w", name, err)
		}
		created = append(created, name)
		return nil
	}

	if err := create(m.tabs.Accounts, accountsHeader); err != nil {
		return created, err
	}
	if err := create(m.tabs.Transactions, transactionsHeader); err != nil {
		return created, err
	}
	if err := create(m.tabs.Categories, categoriesHeader); err != nil {
		return created, err
	}

	for _, name := range created {
		if name != m.tabs.Categories {
			continue
		}
		if err := m.seedCategories(ctx); err != nil {
			return created, err
		}
	}
	return created, nil
}

func (m *Manager) seedCategories(ctx context.Context) error {
	rows := max(len(core.DefaultExpenseCategories), len(core.DefaultIncomeCategories))
	for i := 0; i < rows; i++ {
		row := []any{"", ""}
		if i < len(core.DefaultExpenseCategories) {
			row[0] = core.DefaultExpenseCategories[i]
		}
		if i < len(core.DefaultIncomeCategories) {
			row[1] = core.DefaultIncomeCategories[i]
		}
		rng := fmt.Sprintf("A%d:B%d", i+2, i+2)
		if err := m.store.UpdateRow(ctx, m.tabs.Categories, rng, row); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}
