// Package core holds the domain model shared by every aggregator: holdings,
// cash flow entries, ledger accounts and transactions, plus the parsing
// helpers that normalize loosely formatted spreadsheet cells.
package core

import (
	"strconv"
	"strings"
)

// ParseMoney normalizes a currency-formatted cell into a float64.
//
// Numeric input passes through unchanged. String input keeps only digits,
// dots, and minus signs before parsing, so "$1,234.56", "RM 1,234.56" and
// "-12.50" are all handled uniformly. Anything unparsable yields 0: the
// spreadsheet is hand-edited and a stray header fragment must never break
// an aggregation pass.
//
// Examples:
//
//	ParseMoney("RM 1,234.50") -> 1234.50
//	ParseMoney(12.5)          -> 12.5
//	ParseMoney("")            -> 0
//	ParseMoney("abc")         -> 0
func ParseMoney(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseMoneyString(v)
	default:
		return 0
	}
}

func parseMoneyString(s string) float64 {
	f, _ := ParseMoneyOK(s)
	return f
}

// ParseMoneyOK parses a currency cell like ParseMoney but also reports
// whether the cell carried a number at all, for callers that must distinguish
// a real 0 from unparsable text.
func ParseMoneyOK(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return f, true
	}
	// Stripping can leave things like "1.234.56"; take the longest valid
	// numeric prefix, mirroring how lenient float parsing behaves elsewhere.
	f, err := strconv.ParseFloat(numericPrefix(clean), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func numericPrefix(s string) string {
	end := 0
	dotSeen := false
	for i, r := range s {
		if r == '-' {
			if i != 0 {
				break
			}
			continue
		}
		if r == '.' {
			if dotSeen {
				break
			}
			dotSeen = true
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	return s[:end]
}
