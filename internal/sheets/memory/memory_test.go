package memory

import (
	"context"
	"testing"
)

func TestParseA1(t *testing.T) {
	cases := []struct {
		in   string
		want span
	}{
		{"A:N", span{startCol: 0, endCol: 13, startRow: -1, endRow: -1}},
		{"A2:G2", span{startCol: 0, endCol: 6, startRow: 1, endRow: 1}},
		{"B3", span{startCol: 1, endCol: 1, startRow: 2, endRow: 2}},
		{"E:H", span{startCol: 4, endCol: 7, startRow: -1, endRow: -1}},
		{"A1:H100", span{startCol: 0, endCol: 7, startRow: 0, endRow: 99}},
	}
	for _, tc := range cases {
		got, err := parseA1(tc.in)
		if err != nil {
			t.Fatalf("parseA1(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseA1(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if _, err := parseA1("42"); err == nil {
		t.Fatal("expected error for missing column letter")
	}
}

func TestReadRangeMissingTab(t *testing.T) {
	s := New()
	if _, err := s.ReadRange(context.Background(), "Nope", "A:B"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestAppendTracksColumnGroups(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("Cash Flow", [][]string{
		{"Date", "Amount MYR", "Reason", "", "Date", "MYR", "USD", "Rate"},
		{"01/02/2024", "1000", "savings"},
	})

	// The deposit group (A:C) has two rows, the conversion group (E:H) only
	// a header; appends must land independently.
	if err := s.AppendRow(ctx, "Cash Flow", "A:C", []any{"15/03/2024", 500, "topup"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendRow(ctx, "Cash Flow", "E:H", []any{"15/03/2024", 4700, 1000, 4.7}); err != nil {
		t.Fatal(err)
	}

	rows, err := s.ReadRange(ctx, "Cash Flow", "A:H")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2][0] != "15/03/2024" || rows[2][2] != "topup" {
		t.Fatalf("deposit append misplaced: %v", rows[2])
	}
	if rows[1][4] != "15/03/2024" || rows[1][7] != "4.7" {
		t.Fatalf("conversion append misplaced: %v", rows[1])
	}
}

func TestUpdateAndClearRow(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("MM_Transactions", [][]string{
		{"Date", "Type", "Category", "Amount", "From", "To", "Note"},
		{"2024-03-01", "Expense", "Food", "20", "Wallet", "", "lunch"},
	})

	if err := s.UpdateRow(ctx, "MM_Transactions", "A2:G2", []any{"2024-03-01", "Expense", "Food", 25, "Wallet", "", "dinner"}); err != nil {
		t.Fatal(err)
	}
	rows, _ := s.ReadRange(ctx, "MM_Transactions", "A:G")
	if rows[1][3] != "25" || rows[1][6] != "dinner" {
		t.Fatalf("update failed: %v", rows[1])
	}

	if err := s.ClearRange(ctx, "MM_Transactions", "A2:G2"); err != nil {
		t.Fatal(err)
	}
	rows, _ = s.ReadRange(ctx, "MM_Transactions", "A:G")
	if len(rows) > 1 && len(rows[1]) != 0 {
		t.Fatalf("clear left data: %v", rows[1])
	}
}

func TestCreateTabIdempotencyContract(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateTab(ctx, "MM_Accounts", []string{"Name", "Category"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateTab(ctx, "MM_Accounts", nil); err == nil {
		t.Fatal("expected error on duplicate tab")
	}
	tabs, _ := s.ListTabs(ctx)
	if len(tabs) != 1 || tabs[0] != "MM_Accounts" {
		t.Fatalf("tabs = %v", tabs)
	}
}
