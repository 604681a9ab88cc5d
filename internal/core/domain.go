package core

import (
	"errors"
	"strings"
)

// TradeAction marks a trade row as a purchase or a sale.
type TradeAction string

const (
	Buy  TradeAction = "BUY"
	Sell TradeAction = "SELL"
)

// TransactionType tags a ledger transaction. The three variants carry
// different account fields: Income flows into ToAccount, Expense flows out of
// FromAccount, and Transfer moves between both.
type TransactionType string

const (
	Income   TransactionType = "Income"
	Expense  TransactionType = "Expense"
	Transfer TransactionType = "Transfer"
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrEmptyCategory  = errors.New("empty category")
	ErrMissingAccount = errors.New("missing account for transaction type")
	ErrEmptyTicker    = errors.New("empty ticker")
	ErrInvalidAction  = errors.New("invalid trade action")
)

type (
	// Holding is one actively-held position with its live valuation. It is
	// rebuilt from the Portfolio sheet on every read and never persisted.
	Holding struct {
		Ticker              string  `json:"ticker"`
		Quantity            float64 `json:"quantity"`
		AvgCost             float64 `json:"avgCost"`
		CurrentPrice        float64 `json:"currentPrice"`
		CurrentValue        float64 `json:"currentValue"`
		TotalCost           float64 `json:"totalCost"`
		UnrealizedPL        float64 `json:"unrealizedPL"`
		UnrealizedPLPercent float64 `json:"unrealizedPLPercent"`
		Allocation          float64 `json:"allocation"`
		Sector              string  `json:"sector"`
		AssetClass          string  `json:"assetClass"`
	}

	// PortfolioSummary aggregates the holdings snapshot. NetWorth and
	// TotalCost may come from labeled summary cells on the sheet; TotalPL is
	// always derived as NetWorth - TotalCost.
	PortfolioSummary struct {
		NetWorth       float64   `json:"netWorth"`
		TotalCost      float64   `json:"totalCost"`
		TotalPL        float64   `json:"totalPL"`
		TotalPLPercent float64   `json:"totalPLPercent"`
		CashBalance    float64   `json:"cashBalance"`
		Holdings       []Holding `json:"holdings"`
	}

	// Trade is the payload for appending a row to the trades tab.
	Trade struct {
		Date     string      `json:"date"`
		Ticker   string      `json:"ticker"`
		Action   TradeAction `json:"action"`
		Quantity float64     `json:"quantity"`
		Price    float64     `json:"price"`
		Fees     float64     `json:"fees"`
	}

	Deposit struct {
		Date      string  `json:"date"`
		AmountMYR float64 `json:"amountMYR"`
		Reason    string  `json:"reason,omitempty"`
	}

	Conversion struct {
		Date      string  `json:"date"`
		AmountMYR float64 `json:"amountMYR"`
		AmountUSD float64 `json:"amountUSD"`
		Rate      float64 `json:"rate"`
	}

	CashFlowSummary struct {
		TotalDepositedMYR float64      `json:"totalDepositedMYR"`
		TotalConvertedMYR float64      `json:"totalConvertedMYR"`
		TotalConvertedUSD float64      `json:"totalConvertedUSD"`
		AvgRate           float64      `json:"avgRate"`
		Deposits          []Deposit    `json:"deposits"`
		Conversions       []Conversion `json:"conversions"`
	}

	// MoneyAccount is a day-to-day cash account. CurrentBalance is read from
	// the sheet's own calculated column and is never replayed from
	// transactions; an earlier revision derived it and double-counted.
	MoneyAccount struct {
		Name           string  `json:"name"`
		Category       string  `json:"category"`
		LogoURL        string  `json:"logoUrl"`
		InitialBalance float64 `json:"initialBalance"`
		CurrentBalance float64 `json:"currentBalance"`
	}

	// MoneyTransaction is one ledger row. ID is a stable identifier written
	// to a hidden sheet column at creation time; rows predating that column
	// get a synthetic row-derived id. RowIndex is the 1-based sheet row, kept
	// as a display/debug aid; mutations resolve the row by ID.
	MoneyTransaction struct {
		ID          string          `json:"id"`
		RowIndex    int             `json:"rowIndex,omitempty"`
		Date        string          `json:"date"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Amount      float64         `json:"amount"`
		FromAccount string          `json:"fromAccount,omitempty"`
		ToAccount   string          `json:"toAccount,omitempty"`
		Note        string          `json:"note,omitempty"`
	}

	MonthlyStats struct {
		Income        float64 `json:"income"`
		Expense       float64 `json:"expense"`
		IncomeGrowth  float64 `json:"incomeGrowth"`
		ExpenseGrowth float64 `json:"expenseGrowth"`
	}

	// CategorySpending is net spending for one category in the current
	// month. Limit is synthetic (there is no budget sheet): spent*1.2 with a
	// 500 floor, so the UI always has a bar to fill.
	CategorySpending struct {
		Category   string  `json:"category"`
		Spent      float64 `json:"spent"`
		Limit      float64 `json:"limit"`
		Percentage float64 `json:"percentage"`
	}

	GraphPoint struct {
		Name    string  `json:"name"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	Bill struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
		IsPaid bool    `json:"isPaid"`
	}

	// MoneyManagerData is the full ledger bundle returned to the dashboard.
	MoneyManagerData struct {
		Accounts          []MoneyAccount     `json:"accounts"`
		Transactions      []MoneyTransaction `json:"transactions"`
		TotalBalance      float64            `json:"totalBalance"`
		MonthlyStats      MonthlyStats       `json:"monthlyStats"`
		CategorySpending  []CategorySpending `json:"categorySpending"`
		GraphData         []GraphPoint       `json:"graphData"`
		UpcomingBills     []Bill             `json:"upcomingBills"`
		Categories        []string           `json:"categories"`
		IncomeCategories  []string           `json:"incomeCategories"`
		ExpenseCategories []string           `json:"expenseCategories"`
	}
)

// Default category lists, used whenever the categories tab is empty or
// unreadable.
var (
	DefaultIncomeCategories  = []string{"Salary", "Bonus", "Allowance", "Dividend", "Side Hustle", "Other"}
	DefaultExpenseCategories = []string{"Food", "Transport", "Bills", "Fashion", "Entertainment", "Healthcare", "Electronics", "Debt", "Family", "Other"}
)

// NewIncome builds an Income transaction flowing into toAccount.
func NewIncome(date, category string, amount float64, toAccount, note string) MoneyTransaction {
	return MoneyTransaction{Date: date, Type: Income, Category: category, Amount: amount, ToAccount: toAccount, Note: note}
}

// NewExpense builds an Expense transaction flowing out of fromAccount.
func NewExpense(date, category string, amount float64, fromAccount, note string) MoneyTransaction {
	return MoneyTransaction{Date: date, Type: Expense, Category: category, Amount: amount, FromAccount: fromAccount, Note: note}
}

// NewTransfer builds a Transfer between two accounts.
func NewTransfer(date string, amount float64, fromAccount, toAccount, note string) MoneyTransaction {
	return MoneyTransaction{Date: date, Type: Transfer, Category: "Transfer", Amount: amount, FromAccount: fromAccount, ToAccount: toAccount, Note: note}
}

// Validate enforces the per-variant account requirements before a
// transaction is written. Rows read back from the sheet are not validated;
// reads are best-effort.
func (t MoneyTransaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	switch t.Type {
	case Income:
		if strings.TrimSpace(t.ToAccount) == "" {
			return ErrMissingAccount
		}
	case Expense:
		if strings.TrimSpace(t.FromAccount) == "" {
			return ErrMissingAccount
		}
	case Transfer:
		if strings.TrimSpace(t.FromAccount) == "" || strings.TrimSpace(t.ToAccount) == "" {
			return ErrMissingAccount
		}
	default:
		return ErrInvalidType
	}
	return nil
}

func (t Trade) Validate() error {
	if strings.TrimSpace(t.Ticker) == "" {
		return ErrEmptyTicker
	}
	if t.Action != Buy && t.Action != Sell {
		return ErrInvalidAction
	}
	if t.Quantity <= 0 || t.Price < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Amount is the trade's total consideration, quantity times price.
func (t Trade) TotalAmount() float64 {
	return t.Quantity * t.Price
}

func (d Deposit) Validate() error {
	if d.AmountMYR <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Conversion) Validate() error {
	if c.AmountMYR <= 0 || c.AmountUSD <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// EmptyPortfolioSummary is the zeroed, well-formed summary returned when the
// portfolio tab is missing or unreadable.
func EmptyPortfolioSummary() PortfolioSummary {
	return PortfolioSummary{Holdings: []Holding{}}
}

// EmptyCashFlowSummary is the zeroed cash flow document.
func EmptyCashFlowSummary() CashFlowSummary {
	return CashFlowSummary{Deposits: []Deposit{}, Conversions: []Conversion{}}
}

// EmptyMoneyManagerData is the zeroed ledger bundle with default taxonomy.
func EmptyMoneyManagerData() MoneyManagerData {
	return MoneyManagerData{
		Accounts:          []MoneyAccount{},
		Transactions:      []MoneyTransaction{},
		CategorySpending:  []CategorySpending{},
		GraphData:         []GraphPoint{},
		UpcomingBills:     []Bill{},
		Categories:        append(append([]string{}, DefaultExpenseCategories...), DefaultIncomeCategories...),
		IncomeCategories:  append([]string{}, DefaultIncomeCategories...),
		ExpenseCategories: append([]string{}, DefaultExpenseCategories...),
	}
}
