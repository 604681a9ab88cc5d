package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/sheets/memory"
)

var testTabs = Tabs{
	Accounts:     "MM_Accounts",
	Transactions: "MM_Transactions",
	Categories:   "MM_Categories",
}

// testNow anchors every month-sensitive calculation to mid June 2025.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

func newTestService(store *memory.Store) *Service {
	svc := NewService(store, testTabs)
	svc.now = func() time.Time { return testNow }
	return svc
}

func seedAccounts(store *memory.Store, rows ...[]string) {
	store.Seed(testTabs.Accounts, append([][]string{{"NAME", "CATEGORY", "LOGO", "INITIAL", "CURRENT"}}, rows...))
}

func seedTransactions(store *memory.Store, rows ...[]string) {
	store.Seed(testTabs.Transactions, append([][]string{{"DATE", "TYPE", "CATEGORY", "AMOUNT", "FROM", "TO", "NOTE", "ID"}}, rows...))
}

func seedCategories(store *memory.Store, rows ...[]string) {
	store.Seed(testTabs.Categories, append([][]string{{"EXPENSE", "INCOME"}}, rows...))
}

func TestDataAccounts(t *testing.T) {
	store := memory.New()
	seedAccounts(store,
		[]string{"Wallet", "Cash", "", "100", "50"},
		[]string{"Bank", "Savings", "https://logo", "1,000", "RM 2,500"},
		[]string{"", "", "", "", ""},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Accounts, 2)
	assert.Equal(t, "Bank", got.Accounts[0].Name)
	assert.Equal(t, 2500.0, got.Accounts[0].CurrentBalance)
	assert.Equal(t, "Wallet", got.Accounts[1].Name)
	assert.Equal(t, 2550.0, got.TotalBalance)
}

func TestDataTransactionIdentity(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"01/06/2025", "Expense", "Food", "25", "Wallet", "", "lunch", "abc-123"},
		[]string{"02/06/2025", "Income", "Salary", "3000", "", "Bank", "", ""},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)

	// Sorted newest first.
	assert.Equal(t, "mtx-2", got.Transactions[0].ID)
	assert.Equal(t, 3, got.Transactions[0].RowIndex)
	assert.Equal(t, core.Income, got.Transactions[0].Type)
	assert.Equal(t, "abc-123", got.Transactions[1].ID)
	assert.Equal(t, 2, got.Transactions[1].RowIndex)
}

func TestDataMonthlyStats(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"05/06/2025", "Income", "Salary", "3000", "", "Bank", "", "a"},
		[]string{"06/06/2025", "Expense", "Food", "500", "Bank", "", "", "b"},
		[]string{"10/05/2025", "Income", "Salary", "2000", "", "Bank", "", "c"},
		[]string{"11/05/2025", "Expense", "Food", "1000", "Bank", "", "", "d"},
		[]string{"01/01/2024", "Expense", "Food", "999", "Bank", "", "", "e"},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3000.0, got.MonthlyStats.Income)
	assert.Equal(t, 500.0, got.MonthlyStats.Expense)
	assert.InDelta(t, 50.0, got.MonthlyStats.IncomeGrowth, 1e-9)
	assert.InDelta(t, -50.0, got.MonthlyStats.ExpenseGrowth, 1e-9)
}

func TestDataMonthlyStatsAtMonthEnd(t *testing.T) {
	// On the 31st, naive month subtraction would land back in the current
	// month and merge the two buckets.
	store := memory.New()
	seedTransactions(store,
		[]string{"10/02/2025", "Income", "Salary", "1000", "", "Bank", "", "a"},
		[]string{"05/03/2025", "Income", "Salary", "1500", "", "Bank", "", "b"},
	)

	svc := NewService(store, testTabs)
	svc.now = func() time.Time { return time.Date(2025, time.March, 31, 12, 0, 0, 0, time.Local) }

	got, err := svc.Data(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1500.0, got.MonthlyStats.Income)
	assert.InDelta(t, 50.0, got.MonthlyStats.IncomeGrowth, 1e-9)

	require.Len(t, got.GraphData, 2)
	assert.Equal(t, "Feb", got.GraphData[0].Name)
	assert.Equal(t, 1000.0, got.GraphData[0].Income)
	assert.Equal(t, "Mar", got.GraphData[1].Name)
	assert.Equal(t, 1500.0, got.GraphData[1].Income)
}

func TestDataSkipsPartialRowsAndDefaultsCategory(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"01/06/2025", "Expense", "", "25", "Wallet", "", "", "a"},
		[]string{"02/06/2025", "Expense", "Food", "", "Wallet", "", "", "b"},
		[]string{"", "Expense", "Food", "30", "Wallet", "", "", "c"},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	// Rows missing a date or an amount never were complete entries.
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "Uncategorized", got.Transactions[0].Category)
	assert.Equal(t, 25.0, got.Transactions[0].Amount)
}

func TestCalcGrowthZeroBaseline(t *testing.T) {
	tests := []struct {
		name       string
		curr, prev float64
		want       float64
	}{
		{"both zero", 0, 0, 0},
		{"activity after silence", 50, 0, 100},
		{"doubling", 200, 100, 100},
		{"halving", 50, 100, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calcGrowth(tt.curr, tt.prev))
		})
	}
}

func TestDataCategorySpendingNetsRefunds(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"05/06/2025", "Expense", "Food", "800", "Bank", "", "", "a"},
		[]string{"06/06/2025", "Income", "Food", "100", "", "Bank", "refund", "b"},
		[]string{"07/06/2025", "Expense", "Transport", "90", "Bank", "", "", "c"},
		[]string{"08/06/2025", "Income", "Fashion", "50", "", "Bank", "", "d"}, // nets below zero, dropped
		[]string{"05/05/2025", "Expense", "Food", "999", "Bank", "", "", "e"}, // previous month
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)
	require.Len(t, got.CategorySpending, 2)

	food := got.CategorySpending[0]
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, 700.0, food.Spent)
	assert.InDelta(t, 840.0, food.Limit, 1e-9)
	assert.InDelta(t, 700.0/840.0*100, food.Percentage, 1e-9)

	transport := got.CategorySpending[1]
	assert.Equal(t, "Transport", transport.Category)
	assert.Equal(t, 500.0, transport.Limit) // floor kicks in
	assert.InDelta(t, 18.0, transport.Percentage, 1e-9)
}

func TestDataGraphBuckets(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"05/06/2025", "Income", "Salary", "3000", "", "Bank", "", "a"},
		[]string{"05/12/2024", "Expense", "Food", "100", "Bank", "", "", "b"},
		[]string{"05/11/2024", "Expense", "Food", "999", "Bank", "", "", "c"},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	// Only months that actually carry transactions chart, oldest first.
	require.Len(t, got.GraphData, 3)
	assert.Equal(t, "Nov", got.GraphData[0].Name)
	assert.Equal(t, 999.0, got.GraphData[0].Expense)
	assert.Equal(t, "Dec", got.GraphData[1].Name)
	assert.Equal(t, 100.0, got.GraphData[1].Expense)
	assert.Equal(t, "Jun", got.GraphData[2].Name)
	assert.Equal(t, 3000.0, got.GraphData[2].Income)
}

func TestDataGraphKeepsRecentSevenMonths(t *testing.T) {
	store := memory.New()
	rows := make([][]string, 0, 9)
	for i := 0; i < 9; i++ {
		date := time.Date(2024, time.October, 5, 12, 0, 0, 0, time.Local).AddDate(0, i, 0)
		rows = append(rows, []string{date.Format("02/01/2006"), "Expense", "Food", "10", "Bank", "", "", fmt.Sprintf("id-%d", i)})
	}
	seedTransactions(store, rows...)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	require.Len(t, got.GraphData, 7)
	assert.Equal(t, "Dec", got.GraphData[0].Name) // Oct and Nov 2024 fall off
	assert.Equal(t, "Jun", got.GraphData[6].Name)
}

func TestDataUpcomingBills(t *testing.T) {
	store := memory.New()
	seedTransactions(store,
		[]string{"20/06/2025", "Expense", "Bills", "120", "Bank", "", "electricity", "a"},
		[]string{"01/07/2025", "Expense", "Bills", "60", "Bank", "", "", "b"},
		[]string{"10/06/2025", "Expense", "Bills", "40", "Bank", "", "past", "c"},
		[]string{"25/06/2025", "Income", "Salary", "3000", "", "Bank", "", "d"},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)
	require.Len(t, got.UpcomingBills, 2)

	assert.Equal(t, "electricity", got.UpcomingBills[0].Name)
	assert.Equal(t, "Bills", got.UpcomingBills[1].Name) // falls back to category
	assert.False(t, got.UpcomingBills[0].IsPaid)
}

func TestDataCategoriesFromTab(t *testing.T) {
	store := memory.New()
	seedCategories(store,
		[]string{"Groceries", "Salary"},
		[]string{"Rent", ""},
	)

	got, err := newTestService(store).Data(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Groceries", "Rent"}, got.ExpenseCategories)
	assert.Equal(t, []string{"Salary"}, got.IncomeCategories)
	assert.Equal(t, []string{"Groceries", "Rent", "Salary"}, got.Categories)
}

func TestDataMissingTabsDegrade(t *testing.T) {
	got, err := newTestService(memory.New()).Data(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.Accounts)
	assert.Empty(t, got.Transactions)
	assert.Equal(t, core.DefaultExpenseCategories, got.ExpenseCategories)
	assert.Equal(t, core.DefaultIncomeCategories, got.IncomeCategories)
	assert.Equal(t, 0.0, got.TotalBalance)
	assert.Empty(t, got.GraphData)
}
