package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: "memory" or "sheets"
	DataBackend string

	// Google Sheets
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
	TradesTab          string
	PortfolioTab       string
	CashFlowTab        string
	AccountsTab        string
	TransactionsTab    string
	CategoriesTab      string

	// Classifier
	QuoteBaseURL        string
	QuoteTimeout        time.Duration
	ClassifyConcurrency int
	SectorCacheSize     int
	SectorCacheTTL      time.Duration

	// Observability
	SentryDSN string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SpreadsheetID:      getEnv("SPREADSHEET_ID", ""),
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		TradesTab:          getEnv("TRADES_TAB", "Transaction"),
		PortfolioTab:       getEnv("PORTFOLIO_TAB", "Portfolio"),
		CashFlowTab:        getEnv("CASH_FLOW_TAB", "Cash Flow"),
		AccountsTab:        getEnv("ACCOUNTS_TAB", "MM_Accounts"),
		TransactionsTab:    getEnv("TRANSACTIONS_TAB", "MM_Transactions"),
		CategoriesTab:      getEnv("CATEGORIES_TAB", "MM_Categories"),

		QuoteBaseURL:        getEnv("QUOTE_BASE_URL", "https://query2.finance.yahoo.com"),
		QuoteTimeout:        getEnvDuration("QUOTE_TIMEOUT", 5*time.Second),
		ClassifyConcurrency: getEnvInt("CLASSIFY_CONCURRENCY", 4),
		SectorCacheSize:     getEnvInt("SECTOR_CACHE_SIZE", 256),
		SectorCacheTTL:      getEnvDuration("SECTOR_CACHE_TTL", 6*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be 'memory' or 'sheets'", c.DataBackend))
	}

	if c.DataBackend == "sheets" {
		if c.SpreadsheetID == "" {
			errs = append(errs, "SPREADSHEET_ID is required when using the sheets backend")
		}
		if c.ServiceAccountJSON == "" && c.ServiceAccountFile == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for the sheets backend")
		}
		if c.ServiceAccountFile != "" {
			if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.ServiceAccountFile))
			}
		}
	}

	for name, tab := range map[string]string{
		"TRADES_TAB":       c.TradesTab,
		"PORTFOLIO_TAB":    c.PortfolioTab,
		"CASH_FLOW_TAB":    c.CashFlowTab,
		"ACCOUNTS_TAB":     c.AccountsTab,
		"TRANSACTIONS_TAB": c.TransactionsTab,
		"CATEGORIES_TAB":   c.CategoriesTab,
	} {
		if strings.TrimSpace(tab) == "" {
			errs = append(errs, fmt.Sprintf("%s cannot be empty", name))
		}
	}

	if c.ClassifyConcurrency < 1 {
		errs = append(errs, fmt.Sprintf("invalid classify concurrency %d: must be at least 1", c.ClassifyConcurrency))
	}
	if c.SectorCacheSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid sector cache size %d: must be at least 1", c.SectorCacheSize))
	}
	if c.QuoteTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid quote timeout %v: must be at least 1 second", c.QuoteTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
