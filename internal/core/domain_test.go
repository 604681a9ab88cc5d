package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name string
		tx   MoneyTransaction
		err  error
	}{
		{"income ok", NewIncome("2024-03-01", "Salary", 5000, "Bank", ""), nil},
		{"expense ok", NewExpense("2024-03-02", "Food", 200, "Wallet", "lunch"), nil},
		{"transfer ok", NewTransfer("2024-03-03", 100, "Bank", "Wallet", ""), nil},
		{"income missing account", NewIncome("2024-03-01", "Salary", 5000, "", ""), ErrMissingAccount},
		{"expense missing account", NewExpense("2024-03-01", "Food", 20, "", ""), ErrMissingAccount},
		{"transfer one side", NewTransfer("2024-03-01", 100, "Bank", "", ""), ErrMissingAccount},
		{"zero amount", NewExpense("2024-03-01", "Food", 0, "Wallet", ""), ErrInvalidAmount},
		{"empty category", MoneyTransaction{Type: Expense, Amount: 10, FromAccount: "Wallet"}, ErrEmptyCategory},
		{"bad type", MoneyTransaction{Type: "Refund", Category: "Food", Amount: 10}, ErrInvalidType},
	}
	for _, tc := range cases {
		err := tc.tx.Validate()
		if !errors.Is(err, tc.err) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.err)
		}
	}
}

func TestTradeValidate(t *testing.T) {
	good := Trade{Date: "2024-03-01", Ticker: "VOO", Action: Buy, Quantity: 2, Price: 450}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got := good.TotalAmount(); got != 900 {
		t.Fatalf("TotalAmount = %v, want 900", got)
	}
	if err := (Trade{Ticker: "", Action: Buy, Quantity: 1}).Validate(); !errors.Is(err, ErrEmptyTicker) {
		t.Fatalf("expected ErrEmptyTicker, got %v", err)
	}
	if err := (Trade{Ticker: "VOO", Action: "HOLD", Quantity: 1}).Validate(); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestEmptyMoneyManagerData(t *testing.T) {
	d := EmptyMoneyManagerData()
	if len(d.IncomeCategories) != len(DefaultIncomeCategories) {
		t.Fatalf("income categories: got %d", len(d.IncomeCategories))
	}
	if len(d.Categories) != len(DefaultExpenseCategories)+len(DefaultIncomeCategories) {
		t.Fatalf("combined categories: got %d", len(d.Categories))
	}
	if d.Accounts == nil || d.Transactions == nil || d.UpcomingBills == nil {
		t.Fatal("slices must be non-nil for JSON encoding")
	}
}
