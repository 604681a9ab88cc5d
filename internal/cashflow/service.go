// Package cashflow aggregates the funding tab: MYR deposits on the left
// column group and MYR-to-USD conversions on the right one.
package cashflow

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/sheets"
)

// Column positions inside the A:H read. Deposits occupy A-C, conversions E-H,
// with column D left blank as a visual divider on the sheet.
const (
	colDepositDate   = 0
	colDepositAmount = 1
	colDepositReason = 2

	colConvDate      = 4
	colConvAmountMYR = 5
	colConvAmountUSD = 6
	colConvRate      = 7
)

type Service struct {
	store sheets.ReadWriter
	tab   string
}

func NewService(store sheets.ReadWriter, tab string) *Service {
	return &Service{store: store, tab: tab}
}

// Summary reads the whole tab once and splits it into the two row groups.
// Both column groups grow independently, so each row is checked for each
// group on its own.
func (s *Service) Summary(ctx context.Context) (core.CashFlowSummary, error) {
	rows, err := s.store.ReadRange(ctx, s.tab, "A:H")
	if err != nil {
		if sheets.IsNotFound(err) {
			log.Swallowed(ctx, "cash flow tab missing, returning zeroed summary", err, "tab", s.tab)
			return core.EmptyCashFlowSummary(), nil
		}
		return core.EmptyCashFlowSummary(), fmt.Errorf("read cash flow: %w", err)
	}

	summary := core.EmptyCashFlowSummary()
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		if d, ok := depositFromRow(row); ok {
			summary.Deposits = append(summary.Deposits, d)
			summary.TotalDepositedMYR += d.AmountMYR
		}
		if c, ok := conversionFromRow(row); ok {
			summary.Conversions = append(summary.Conversions, c)
			summary.TotalConvertedMYR += c.AmountMYR
			summary.TotalConvertedUSD += c.AmountUSD
		}
	}

	if summary.TotalConvertedUSD > 0 {
		summary.AvgRate = summary.TotalConvertedMYR / summary.TotalConvertedUSD
	}

	// Newest first, by the parsed date rather than by sheet position: rows
	// are occasionally backfilled out of order.
	sort.SliceStable(summary.Deposits, func(i, j int) bool {
		return core.ParseDate(summary.Deposits[i].Date).After(core.ParseDate(summary.Deposits[j].Date))
	})
	sort.SliceStable(summary.Conversions, func(i, j int) bool {
		return core.ParseDate(summary.Conversions[i].Date).After(core.ParseDate(summary.Conversions[j].Date))
	})
	return summary, nil
}

// depositFromRow accepts a row only when the date cell carries at least one
// digit and the amount cell parses to a number. A zero amount is still a
// deposit row; only unparsable cells reject.
func depositFromRow(row []string) (core.Deposit, bool) {
	date := cell(row, colDepositDate)
	if !hasDigit(date) {
		return core.Deposit{}, false
	}
	amount, ok := core.ParseMoneyOK(cell(row, colDepositAmount))
	if !ok {
		return core.Deposit{}, false
	}
	return core.Deposit{
		Date:      date,
		AmountMYR: amount,
		Reason:    cell(row, colDepositReason),
	}, true
}

// conversionFromRow requires date and both amounts to be present. The rate
// cell is optional; a missing rate is derived from the two amounts.
func conversionFromRow(row []string) (core.Conversion, bool) {
	date := cell(row, colConvDate)
	myrCell := cell(row, colConvAmountMYR)
	usdCell := cell(row, colConvAmountUSD)
	if !hasDigit(date) || myrCell == "" || usdCell == "" {
		return core.Conversion{}, false
	}
	c := core.Conversion{
		Date:      date,
		AmountMYR: core.ParseMoney(myrCell),
		AmountUSD: core.ParseMoney(usdCell),
		Rate:      core.ParseMoney(cell(row, colConvRate)),
	}
	if c.Rate == 0 && c.AmountUSD > 0 {
		c.Rate = c.AmountMYR / c.AmountUSD
	}
	return c, true
}

// AddDeposit appends to the left column group.
func (s *Service) AddDeposit(ctx context.Context, d core.Deposit) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validate deposit: %w", err)
	}
	row := []any{d.Date, d.AmountMYR, d.Reason}
	if err := s.store.AppendRow(ctx, s.tab, "A:C", row); err != nil {
		return fmt.Errorf("append deposit: %w", err)
	}
	return nil
}

// AddConversion appends to the right column group, deriving the rate when the
// caller left it zero.
func (s *Service) AddConversion(ctx context.Context, c core.Conversion) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate conversion: %w", err)
	}
	if c.Rate == 0 {
		c.Rate = c.AmountMYR / c.AmountUSD
	}
	row := []any{c.Date, c.AmountMYR, c.AmountUSD, c.Rate}
	if err := s.store.AppendRow(ctx, s.tab, "E:H", row); err != nil {
		return fmt.Errorf("append conversion: %w", err)
	}
	return nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
