package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/classify"
	"finboard/internal/core"
	"finboard/internal/sheets/memory"
)

const (
	testPortfolioTab = "Portfolio"
	testTradesTab    = "Transaction"
)

func newTestService(store *memory.Store) *Service {
	cls := classify.New(classify.DefaultSectorMap(), nil, nil)
	return NewService(store, cls, testPortfolioTab, testTradesTab, DefaultLayout(), 2)
}

func TestSummaryReadsLabeledStats(t *testing.T) {
	store := memory.New()
	store.Seed(testPortfolioTab, [][]string{
		{"#", "SYMBOL", "QTY", "STATUS", "AVG COST", "PRICE"},
		{"1", "AAPL", "10", "Active", "100", "150", "", "", "", "", "", "Total Invested", "RM 2,000"},
		{"2", "TSLA", "5", "Active", "200", "300", "", "", "", "", "", "Total Cash", "250"},
		{"3", "OLD", "3", "Sold", "50", "60", "", "", "", "", "", "Net Asset", "3,500"},
	})

	got, err := newTestService(store).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3500.0, got.NetWorth)
	assert.Equal(t, 2000.0, got.TotalCost)
	assert.Equal(t, 250.0, got.CashBalance)
	assert.Equal(t, 1500.0, got.TotalPL)
	assert.InDelta(t, 75.0, got.TotalPLPercent, 1e-9)

	require.Len(t, got.Holdings, 2) // sold row excluded
	for _, h := range got.Holdings {
		assert.Equal(t, 1500.0, h.CurrentValue)
		assert.InDelta(t, 1500.0/3500.0*100, h.Allocation, 1e-9)
	}
}

func TestSummaryDerivesMissingStats(t *testing.T) {
	store := memory.New()
	store.Seed(testPortfolioTab, [][]string{
		{"#", "SYMBOL", "QTY", "STATUS", "AVG COST", "PRICE"},
		{"1", "AAPL", "10", "Active", "100", "150"},
		{"2", "TSLA", "5", "Active", "200", "300", "", "", "", "", "", "Total Cash", "500"},
	})

	got, err := newTestService(store).Summary(context.Background())
	require.NoError(t, err)

	// 1500 + 1500 holdings value plus cash.
	assert.Equal(t, 3500.0, got.NetWorth)
	assert.Equal(t, 2000.0, got.TotalCost)
	assert.Equal(t, 1500.0, got.TotalPL)
}

func TestSummarySortsByCurrentValueDesc(t *testing.T) {
	store := memory.New()
	store.Seed(testPortfolioTab, [][]string{
		{"header"},
		{"1", "AAPL", "1", "Active", "100", "100"},
		{"2", "TSLA", "10", "Active", "100", "100"},
		{"3", "VOO", "5", "Active", "100", "100"},
	})

	got, err := newTestService(store).Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Holdings, 3)
	assert.Equal(t, "TSLA", got.Holdings[0].Ticker)
	assert.Equal(t, "VOO", got.Holdings[1].Ticker)
	assert.Equal(t, "AAPL", got.Holdings[2].Ticker)
}

func TestSummaryClassifiesHoldings(t *testing.T) {
	store := memory.New()
	store.Seed(testPortfolioTab, [][]string{
		{"header"},
		{"1", "AAPL", "1", "Active", "100", "100"},
		{"2", "VOO", "1", "Active", "100", "90"},
		{"3", "BTC", "1", "Active", "100", "80"},
	})

	got, err := newTestService(store).Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Holdings, 3)

	byTicker := map[string]core.Holding{}
	for _, h := range got.Holdings {
		byTicker[h.Ticker] = h
	}
	assert.Equal(t, "Technology", byTicker["AAPL"].Sector)
	assert.Equal(t, classify.AssetEquity, byTicker["AAPL"].AssetClass)
	assert.Equal(t, "Index ETF", byTicker["VOO"].Sector)
	assert.Equal(t, classify.AssetETF, byTicker["VOO"].AssetClass)
	assert.Equal(t, "Crypto", byTicker["BTC"].Sector)
	assert.Equal(t, classify.AssetCrypto, byTicker["BTC"].AssetClass)
}

func TestSummarySkipsHeaderSentinel(t *testing.T) {
	store := memory.New()
	store.Seed(testPortfolioTab, [][]string{
		{"header"},
		{"", "SYMBOL", "0", "Active", "0", "0"},
		{"1", "AAPL", "1", "Active", "100", "100"},
	})

	got, err := newTestService(store).Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Holdings, 1)
	assert.Equal(t, "AAPL", got.Holdings[0].Ticker)
}

func TestSummaryMissingTabReturnsZeroed(t *testing.T) {
	got, err := newTestService(memory.New()).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.EmptyPortfolioSummary(), got)
}

func TestAddTradeAppendsRow(t *testing.T) {
	store := memory.New()
	store.Seed(testTradesTab, [][]string{
		{"DATE", "SYMBOL", "ACTION", "QTY", "PRICE", "FEES", "AMOUNT"},
	})
	svc := newTestService(store)

	err := svc.AddTrade(context.Background(), core.Trade{
		Date: "2025-03-01", Ticker: "aapl", Action: core.Buy, Quantity: 2, Price: 150, Fees: 1.5,
	})
	require.NoError(t, err)

	rows, err := store.ReadRange(context.Background(), testTradesTab, "A:G")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2025-03-01", "AAPL", "BUY", "2", "150", "1.5", "300"}, rows[1])
}

func TestAddTradeValidates(t *testing.T) {
	svc := newTestService(memory.New())
	err := svc.AddTrade(context.Background(), core.Trade{Ticker: "AAPL", Action: "HOLD", Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, core.ErrInvalidAction)
}
