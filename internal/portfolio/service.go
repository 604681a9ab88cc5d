// Package portfolio builds the holdings snapshot from the portfolio tab and
// appends trade rows to the trades tab.
package portfolio

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"finboard/internal/classify"
	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/sheets"
)

// Layout maps the 0-based column positions of the portfolio tab. Positions
// moved between schema revisions, so they are configuration rather than
// constants in the scan loop.
type Layout struct {
	Ticker   int
	Quantity int
	Status   int
	AvgCost  int
	Price    int
	// Label/Value form the summary-stat pair region.
	Label int
	Value int
}

// DefaultLayout matches the current sheet revision (columns B, C, D, E, F
// for holdings; L/M for summary stats).
func DefaultLayout() Layout {
	return Layout{Ticker: 1, Quantity: 2, Status: 3, AvgCost: 4, Price: 5, Label: 11, Value: 12}
}

// Summary-stat labels recognized in the label column.
const (
	labelTotalInvested = "Total Invested"
	labelNetAsset      = "Net Asset"
	labelTotalCash     = "Total Cash"

	// tickerHeaderSentinel guards against a stray header row inside the
	// data region.
	tickerHeaderSentinel = "SYMBOL"

	statusActive = "Active"
)

type Service struct {
	store        sheets.ReadWriter
	classifier   *classify.Classifier
	portfolioTab string
	tradesTab    string
	layout       Layout
	concurrency  int
}

func NewService(store sheets.ReadWriter, classifier *classify.Classifier, portfolioTab, tradesTab string, layout Layout, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		store:        store,
		classifier:   classifier,
		portfolioTab: portfolioTab,
		tradesTab:    tradesTab,
		layout:       layout,
		concurrency:  concurrency,
	}
}

// Summary scans the portfolio tab once and returns the aggregated snapshot.
// The returned summary is always well-formed: a missing tab or transport
// failure yields the zeroed document, and the error (nil for a missing tab)
// is for the caller's logging only.
func (s *Service) Summary(ctx context.Context) (core.PortfolioSummary, error) {
	rows, err := s.store.ReadRange(ctx, s.portfolioTab, "A:N")
	if err != nil {
		if sheets.IsNotFound(err) {
			log.Swallowed(ctx, "portfolio tab missing, returning zeroed summary", err, "tab", s.portfolioTab)
			return core.EmptyPortfolioSummary(), nil
		}
		return core.EmptyPortfolioSummary(), fmt.Errorf("read portfolio: %w", err)
	}

	summary := core.EmptyPortfolioSummary()
	holdings := make([]core.Holding, 0)

	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		// Summary stat rows live in their own column pair and can share a
		// row with a holding.
		if label := cell(row, s.layout.Label); label != "" {
			val := core.ParseMoney(cell(row, s.layout.Value))
			switch label {
			case labelTotalInvested:
				summary.TotalCost = val
			case labelTotalCash:
				summary.CashBalance = val
			case labelNetAsset:
				summary.NetWorth = val
			}
		}

		if cell(row, s.layout.Status) != statusActive {
			continue
		}
		ticker := strings.ToUpper(cell(row, s.layout.Ticker))
		if ticker == "" || ticker == tickerHeaderSentinel {
			continue
		}

		quantity := core.ParseMoney(cell(row, s.layout.Quantity))
		avgCost := core.ParseMoney(cell(row, s.layout.AvgCost))
		price := core.ParseMoney(cell(row, s.layout.Price))
		currentValue := quantity * price
		totalCost := quantity * avgCost
		unrealized := currentValue - totalCost

		h := core.Holding{
			Ticker:       ticker,
			Quantity:     quantity,
			AvgCost:      avgCost,
			CurrentPrice: price,
			CurrentValue: currentValue,
			TotalCost:    totalCost,
			UnrealizedPL: unrealized,
		}
		if totalCost > 0 {
			h.UnrealizedPLPercent = unrealized / totalCost * 100
		}
		holdings = append(holdings, h)
	}

	s.classifyAll(ctx, holdings)

	// Sheet-provided stats are authoritative; derive only what is missing.
	if summary.NetWorth == 0 && len(holdings) > 0 {
		for _, h := range holdings {
			summary.NetWorth += h.CurrentValue
		}
		summary.NetWorth += summary.CashBalance
	}
	if summary.TotalCost == 0 && len(holdings) > 0 {
		for _, h := range holdings {
			summary.TotalCost += h.TotalCost
		}
	}

	for i := range holdings {
		if summary.NetWorth > 0 {
			holdings[i].Allocation = holdings[i].CurrentValue / summary.NetWorth * 100
		}
	}

	summary.TotalPL = summary.NetWorth - summary.TotalCost
	if summary.TotalCost > 0 {
		summary.TotalPLPercent = summary.TotalPL / summary.TotalCost * 100
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].CurrentValue > holdings[j].CurrentValue
	})
	summary.Holdings = holdings
	return summary, nil
}

// classifyAll resolves sector and asset class for every holding with a
// bounded fan-out. Each distinct ticker is looked up once per pass.
func (s *Service) classifyAll(ctx context.Context, holdings []core.Holding) {
	if s.classifier == nil || len(holdings) == 0 {
		return
	}

	unique := make(map[string]struct{}, len(holdings))
	for _, h := range holdings {
		unique[h.Ticker] = struct{}{}
	}

	var mu sync.Mutex
	resolved := make(map[string]classify.Classification, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for ticker := range unique {
		g.Go(func() error {
			c := s.classifier.Classify(gctx, ticker)
			mu.Lock()
			resolved[ticker] = c
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures degrade inside Classify

	for i := range holdings {
		c := resolved[holdings[i].Ticker]
		holdings[i].Sector = c.Sector
		holdings[i].AssetClass = c.AssetClass
	}
}

// AddTrade appends one row to the trades tab. The Amount column is derived
// server-side from quantity and price.
func (s *Service) AddTrade(ctx context.Context, t core.Trade) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate trade: %w", err)
	}
	row := []any{t.Date, strings.ToUpper(strings.TrimSpace(t.Ticker)), string(t.Action), t.Quantity, t.Price, t.Fees, t.TotalAmount()}
	if err := s.store.AppendRow(ctx, s.tradesTab, "A:G", row); err != nil {
		return fmt.Errorf("append trade: %w", err)
	}
	return nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
