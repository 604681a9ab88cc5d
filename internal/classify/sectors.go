package classify

// DefaultSectorMap covers the well-known symbols so most portfolios resolve
// without a remote lookup. Callers pass it (or an override) into New; the
// classifier copies it, so a deployment can swap entries without touching
// package state.
func DefaultSectorMap() map[string]string {
	return map[string]string{
		// Tech
		"AAPL": "Technology", "MSFT": "Technology", "NVDA": "Semiconductors", "INTC": "Semiconductors", "AMD": "Semiconductors",
		"SMH": "Semiconductors", "META": "Technology", "GOOGL": "Technology", "GOOG": "Technology", "AMZN": "Consumer Cyclical",
		"PLTR": "Technology", "AVGO": "Semiconductors", "NFLX": "Communication Services", "CRM": "Technology", "ADBE": "Technology",
		"ORCL": "Technology", "CSCO": "Technology", "TSM": "Semiconductors", "QCOM": "Semiconductors", "MU": "Semiconductors",

		// EV / Auto
		"TSLA": "Automotive", "F": "Automotive", "GM": "Automotive", "RIVN": "Automotive", "LCID": "Automotive",

		// Financials
		"JPM": "Financials", "BAC": "Financials", "V": "Financials", "MA": "Financials", "WFC": "Financials",
		"GS": "Financials", "MS": "Financials", "BLK": "Financials", "C": "Financials",

		// Healthcare
		"UNH": "Healthcare", "JNJ": "Healthcare", "PFE": "Healthcare", "LLY": "Healthcare", "MRK": "Healthcare",
		"ABBV": "Healthcare", "TMO": "Healthcare",

		// Energy
		"XOM": "Energy", "CVX": "Energy", "SHEL": "Energy", "COP": "Energy",

		// Consumer
		"WMT": "Consumer Defensive", "KO": "Consumer Defensive", "PEP": "Consumer Defensive", "PG": "Consumer Defensive",
		"COST": "Consumer Defensive", "MCD": "Consumer Cyclical", "SBUX": "Consumer Cyclical", "NKE": "Consumer Cyclical",

		// ETFs (index / sector)
		"VOO": "Index ETF", "SPY": "Index ETF", "QQQ": "Index ETF", "QQQM": "Index ETF", "IWM": "Index ETF",
		"VTI": "Index ETF", "VEA": "Index ETF", "VWO": "Index ETF", "BND": "Bond ETF", "GLD": "Commodity ETF",
		"XLE": "Energy ETF", "XLF": "Financial ETF", "XLK": "Tech ETF", "XLV": "Healthcare ETF",

		// Crypto
		"IBIT": "Crypto", "BTC": "Crypto", "ETH": "Crypto", "COIN": "Crypto", "MSTR": "Crypto Proxy",
	}
}
