// Package quote looks up instrument profiles (sector, quote type) from the
// Yahoo Finance quoteSummary endpoint. Lookups are strictly best-effort: the
// classifier falls back to a default on any error here.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Profile is the slice of quoteSummary the classifier cares about.
type Profile struct {
	Sector    string
	QuoteType string // e.g. EQUITY, ETF, CRYPTOCURRENCY
}

// ProfileFetcher is implemented by Client and by test doubles.
type ProfileFetcher interface {
	Profile(ctx context.Context, symbol string) (Profile, error)
}

type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

var _ ProfileFetcher = (*Client)(nil)

// NewClient builds a quote client. baseURL is the API root without a
// trailing slash; timeout bounds each attempt including retries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	return &Client{http: rc, baseURL: baseURL}
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile *struct {
				Sector string `json:"sector"`
			} `json:"summaryProfile"`
			QuoteType *struct {
				QuoteType string `json:"quoteType"`
			} `json:"quoteType"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Profile fetches the summaryProfile and quoteType modules for symbol.
func (c *Client) Profile(ctx context.Context, symbol string) (Profile, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryProfile%%2CquoteType",
		c.baseURL, url.PathEscape(symbol))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch quote summary for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("quote summary for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Profile{}, fmt.Errorf("decode quote summary for %s: %w", symbol, err)
	}
	if body.QuoteSummary.Error != nil {
		return Profile{}, fmt.Errorf("quote summary for %s: %s", symbol, body.QuoteSummary.Error.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return Profile{}, fmt.Errorf("quote summary for %s: empty result", symbol)
	}

	var p Profile
	r := body.QuoteSummary.Result[0]
	if r.SummaryProfile != nil {
		p.Sector = r.SummaryProfile.Sector
	}
	if r.QuoteType != nil {
		p.QuoteType = r.QuoteType.QuoteType
	}
	return p, nil
}
