// Package ledger aggregates the money-manager tabs: accounts, transactions
// and the category taxonomy, plus the derived dashboard figures (monthly
// stats, spending bars, graph buckets, upcoming bills).
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/sheets"
)

// Transaction row columns (A:H). Column H holds the stable id and stays
// hidden on the sheet; rows written before the column existed leave it empty.
const (
	colTxDate     = 0
	colTxType     = 1
	colTxCategory = 2
	colTxAmount   = 3
	colTxFrom     = 4
	colTxTo       = 5
	colTxNote     = 6
	colTxID       = 7
)

// Account row columns (A:E). CurrentBalance comes from the sheet's own
// formula column and is never recomputed here.
const (
	colAccName     = 0
	colAccCategory = 1
	colAccLogo     = 2
	colAccInitial  = 3
	colAccCurrent  = 4
)

const graphMonths = 7

// Synthetic budget limit: 20% headroom over what was spent, with a floor so
// small categories still render a meaningful bar.
const (
	limitHeadroom = 1.2
	limitFloor    = 500.0
)

type Tabs struct {
	Accounts     string
	Transactions string
	Categories   string
}

type Service struct {
	store sheets.Store
	tabs  Tabs

	// now is swapped in tests; every month bucket and bill cutoff derives
	// from it.
	now func() time.Time
}

func NewService(store sheets.Store, tabs Tabs) *Service {
	return &Service{store: store, tabs: tabs, now: time.Now}
}

// Data assembles the full dashboard bundle. A missing tab degrades its own
// section to the zeroed form; only transport failures surface as errors, and
// even then the returned bundle is well-formed.
func (s *Service) Data(ctx context.Context) (core.MoneyManagerData, error) {
	data := core.EmptyMoneyManagerData()

	accounts, err := s.readAccounts(ctx)
	if err != nil {
		return core.EmptyMoneyManagerData(), err
	}
	transactions, err := s.readTransactions(ctx)
	if err != nil {
		return core.EmptyMoneyManagerData(), err
	}
	expenseCats, incomeCats, err := s.readCategories(ctx)
	if err != nil {
		return core.EmptyMoneyManagerData(), err
	}

	data.Accounts = accounts
	for _, a := range accounts {
		data.TotalBalance += a.CurrentBalance
	}

	data.ExpenseCategories = expenseCats
	data.IncomeCategories = incomeCats
	data.Categories = append(append([]string{}, expenseCats...), incomeCats...)

	now := s.now()
	data.MonthlyStats = monthlyStats(transactions, now)
	data.CategorySpending = categorySpending(transactions, now)
	data.GraphData = graphData(transactions)
	data.UpcomingBills = upcomingBills(transactions, now)

	sort.SliceStable(transactions, func(i, j int) bool {
		return core.ParseDate(transactions[i].Date).After(core.ParseDate(transactions[j].Date))
	})
	data.Transactions = transactions
	return data, nil
}

func (s *Service) readAccounts(ctx context.Context) ([]core.MoneyAccount, error) {
	rows, err := s.store.ReadRange(ctx, s.tabs.Accounts, "A:E")
	if err != nil {
		if sheets.IsNotFound(err) {
			log.Swallowed(ctx, "accounts tab missing", err, "tab", s.tabs.Accounts)
			return []core.MoneyAccount{}, nil
		}
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	accounts := make([]core.MoneyAccount, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := cell(row, colAccName)
		if name == "" {
			continue
		}
		accounts = append(accounts, core.MoneyAccount{
			Name:           name,
			Category:       cell(row, colAccCategory),
			LogoURL:        cell(row, colAccLogo),
			InitialBalance: core.ParseMoney(cell(row, colAccInitial)),
			CurrentBalance: core.ParseMoney(cell(row, colAccCurrent)),
		})
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CurrentBalance > accounts[j].CurrentBalance
	})
	return accounts, nil
}

func (s *Service) readTransactions(ctx context.Context) ([]core.MoneyTransaction, error) {
	rows, err := s.store.ReadRange(ctx, s.tabs.Transactions, "A:H")
	if err != nil {
		if sheets.IsNotFound(err) {
			log.Swallowed(ctx, "transactions tab missing", err, "tab", s.tabs.Transactions)
			return []core.MoneyTransaction{}, nil
		}
		return nil, fmt.Errorf("read transactions: %w", err)
	}

	txs := make([]core.MoneyTransaction, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		date := cell(row, colTxDate)
		amount := cell(row, colTxAmount)
		if date == "" || amount == "" {
			continue // cleared or partial row
		}
		category := cell(row, colTxCategory)
		if category == "" {
			category = "Uncategorized"
		}
		tx := core.MoneyTransaction{
			ID:          cell(row, colTxID),
			RowIndex:    i + 1,
			Date:        date,
			Type:        normalizeType(cell(row, colTxType)),
			Category:    category,
			Amount:      core.ParseMoney(amount),
			FromAccount: cell(row, colTxFrom),
			ToAccount:   cell(row, colTxTo),
			Note:        cell(row, colTxNote),
		}
		if tx.ID == "" {
			// Rows predating the id column get a positional id.
			tx.ID = fmt.Sprintf("mtx-%d", i)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// readCategories reads the two parallel columns: A holds expense categories,
// B holds income categories. Empty columns fall back to the defaults.
func (s *Service) readCategories(ctx context.Context) (expense, income []string, err error) {
	rows, err := s.store.ReadRange(ctx, s.tabs.Categories, "A:B")
	if err != nil {
		if sheets.IsNotFound(err) {
			log.Swallowed(ctx, "categories tab missing, using defaults", err, "tab", s.tabs.Categories)
			return defaultExpense(), defaultIncome(), nil
		}
		return nil, nil, fmt.Errorf("read categories: %w", err)
	}

	expense = []string{}
	income = []string{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if v := cell(row, 0); v != "" {
			expense = append(expense, v)
		}
		if v := cell(row, 1); v != "" {
			income = append(income, v)
		}
	}
	if len(expense) == 0 {
		expense = defaultExpense()
	}
	if len(income) == 0 {
		income = defaultIncome()
	}
	return expense, income, nil
}

func monthlyStats(txs []core.MoneyTransaction, now time.Time) core.MonthlyStats {
	// Month arithmetic from a day-1 anchor: subtracting a month from the
	// 29th-31st would normalize into the current month and alias the two
	// buckets.
	curr := monthStart(now)
	prev := curr.AddDate(0, -1, 0)

	var stats core.MonthlyStats
	var prevIncome, prevExpense float64
	for _, tx := range txs {
		d := core.ParseDate(tx.Date)
		switch {
		case core.SameMonth(d, curr):
			switch tx.Type {
			case core.Income:
				stats.Income += tx.Amount
			case core.Expense:
				stats.Expense += tx.Amount
			}
		case core.SameMonth(d, prev):
			switch tx.Type {
			case core.Income:
				prevIncome += tx.Amount
			case core.Expense:
				prevExpense += tx.Amount
			}
		}
	}
	stats.IncomeGrowth = calcGrowth(stats.Income, prevIncome)
	stats.ExpenseGrowth = calcGrowth(stats.Expense, prevExpense)
	return stats
}

// calcGrowth guards the zero baseline: any activity after a silent month
// reads as 100% growth, not a division blowup.
func calcGrowth(curr, prev float64) float64 {
	if prev == 0 {
		if curr > 0 {
			return 100
		}
		return 0
	}
	return (curr - prev) / prev * 100
}

// categorySpending nets the current month per category: expenses add, income
// in the same category (refunds, cashbacks) subtracts. Categories that net to
// zero or below are dropped.
func categorySpending(txs []core.MoneyTransaction, now time.Time) []core.CategorySpending {
	net := map[string]float64{}
	for _, tx := range txs {
		if !core.SameMonth(core.ParseDate(tx.Date), now) || tx.Category == "" {
			continue
		}
		switch tx.Type {
		case core.Expense:
			net[tx.Category] += tx.Amount
		case core.Income:
			net[tx.Category] -= tx.Amount
		}
	}

	out := make([]core.CategorySpending, 0, len(net))
	for category, spent := range net {
		if spent <= 0 {
			continue
		}
		limit := spent * limitHeadroom
		if limit < limitFloor {
			limit = limitFloor
		}
		out = append(out, core.CategorySpending{
			Category:   category,
			Spent:      spent,
			Limit:      limit,
			Percentage: spent / limit * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spent > out[j].Spent
	})
	return out
}

// graphData buckets income and expense by calendar month across the whole
// transaction history and keeps the most recent seven data-bearing months,
// oldest first, labeled with the short month name. A ledger idle for a few
// months still charts its last active months.
func graphData(txs []core.MoneyTransaction) []core.GraphPoint {
	type bucket struct {
		income  float64
		expense float64
	}
	byMonth := map[string]*bucket{}
	for _, tx := range txs {
		if tx.Type != core.Income && tx.Type != core.Expense {
			continue
		}
		key := core.MonthKey(core.ParseDate(tx.Date))
		b := byMonth[key]
		if b == nil {
			b = &bucket{}
			byMonth[key] = b
		}
		if tx.Type == core.Income {
			b.income += tx.Amount
		} else {
			b.expense += tx.Amount
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys) // month keys sort chronologically
	if len(keys) > graphMonths {
		keys = keys[len(keys)-graphMonths:]
	}

	points := make([]core.GraphPoint, 0, len(keys))
	for _, k := range keys {
		m, err := time.Parse("2006-01", k)
		if err != nil {
			continue
		}
		b := byMonth[k]
		points = append(points, core.GraphPoint{Name: m.Format("Jan"), Income: b.income, Expense: b.expense})
	}
	return points
}

// monthStart truncates a time to the first day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// upcomingBills treats future-dated expenses as scheduled bills, nearest due
// date first.
func upcomingBills(txs []core.MoneyTransaction, now time.Time) []core.Bill {
	bills := []core.Bill{}
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		d := core.ParseDate(tx.Date)
		if !d.After(now) {
			continue
		}
		name := tx.Note
		if name == "" {
			name = tx.Category
		}
		bills = append(bills, core.Bill{
			ID:     tx.ID,
			Name:   name,
			Date:   tx.Date,
			Amount: tx.Amount,
		})
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return core.ParseDate(bills[i].Date).Before(core.ParseDate(bills[j].Date))
	})
	return bills
}

func normalizeType(raw string) core.TransactionType {
	switch strings.ToLower(raw) {
	case "income":
		return core.Income
	case "expense":
		return core.Expense
	case "transfer":
		return core.Transfer
	}
	return core.TransactionType(raw)
}

func defaultExpense() []string {
	return append([]string{}, core.DefaultExpenseCategories...)
}

func defaultIncome() []string {
	return append([]string{}, core.DefaultIncomeCategories...)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
