// Package classify maps tickers to a sector label and an asset class.
// Resolution order for sectors: static map, cached remote profile lookup,
// then a literal "Other". Remote failures never propagate.
package classify

import (
	"context"
	"strings"

	"finboard/internal/cache"
	"finboard/internal/log"
	"finboard/internal/quote"
)

const (
	AssetEquity = "Equity"
	AssetETF    = "ETF"
	AssetCrypto = "Crypto"

	// SectorFallback is returned when every resolution step fails.
	SectorFallback = "Other"
)

// Classification pairs the two labels a holding carries.
type Classification struct {
	Sector     string
	AssetClass string
}

type Classifier struct {
	sectors map[string]string
	fetcher quote.ProfileFetcher
	cache   *cache.LRU[string]
}

// New builds a Classifier around an immutable copy of sectors. fetcher and
// remote-result cache are both optional; without a fetcher the classifier is
// fully static.
func New(sectors map[string]string, fetcher quote.ProfileFetcher, remoteCache *cache.LRU[string]) *Classifier {
	copied := make(map[string]string, len(sectors))
	for k, v := range sectors {
		copied[strings.ToUpper(k)] = v
	}
	return &Classifier{sectors: copied, fetcher: fetcher, cache: remoteCache}
}

// Classify resolves both labels for a ticker.
func (c *Classifier) Classify(ctx context.Context, ticker string) Classification {
	return Classification{
		Sector:     c.Sector(ctx, ticker),
		AssetClass: c.AssetClass(ticker),
	}
}

// Sector resolves a sector label, degrading to SectorFallback on any remote
// failure.
func (c *Classifier) Sector(ctx context.Context, ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return SectorFallback
	}
	if s, ok := c.sectors[t]; ok {
		return s
	}
	if c.cache != nil {
		if s, ok := c.cache.Get(t); ok {
			return s
		}
	}
	if c.fetcher == nil {
		return SectorFallback
	}

	p, err := c.fetcher.Profile(ctx, t)
	if err != nil {
		log.Swallowed(ctx, "sector lookup failed", err, "ticker", t)
		return SectorFallback
	}

	sector := p.Sector
	if sector == "" {
		switch p.QuoteType {
		case "ETF":
			sector = "Index ETF"
		case "CRYPTOCURRENCY":
			sector = "Crypto"
		default:
			return SectorFallback
		}
	}
	if c.cache != nil {
		c.cache.Set(t, sector)
	}
	return sector
}

// AssetClass buckets a ticker into Equity, ETF, or Crypto.
func (c *Classifier) AssetClass(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if s, ok := c.sectors[t]; ok {
		if strings.Contains(s, "ETF") {
			return AssetETF
		}
		if strings.Contains(s, "Crypto") {
			return AssetCrypto
		}
	}
	if t == "BTC" || t == "ETH" || t == "SOL" {
		return AssetCrypto
	}
	// Rough guess for Vanguard tickers.
	if len(t) == 3 && strings.HasPrefix(t, "V") {
		return AssetETF
	}
	return AssetEquity
}
