// Package analytics computes derived performance metrics from a trade
// history. Every function is a pure, synchronous computation over the
// supplied trade slice: inputs are never mutated, there is no package-level
// mutable state, and results are rebuilt from scratch on every call, so
// concurrent callers are trivially safe.
//
// Degenerate inputs (no trades, no losses, zero variance) degrade to
// well-defined zero or Infinity sentinels instead of returning errors;
// callers never need to special-case "no data yet".
package analytics

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/traderscope/journal/backend/internal/journal"
)

const (
	// DefaultInitialCapital is the account base used when the caller does
	// not supply one. Equity and drawdown percentages are relative to it.
	DefaultInitialCapital = 10000.0

	// DefaultRiskFreeRate is the annual risk-free rate for Sharpe/Sortino.
	DefaultRiskFreeRate = 0.02

	// TradingDaysPerYear is the annualization base for daily returns.
	TradingDaysPerYear = 252.0
)

// Ratio is a float64 that may legitimately be +Inf (e.g. profit factor
// with zero losses). encoding/json rejects infinities, so Ratio marshals
// non-finite values as null while in-process callers still see the
// Infinity sentinel.
type Ratio float64

// MarshalJSON implements json.Marshaler
func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// IsFinite reports whether the ratio holds a finite value
func (r Ratio) IsFinite() bool {
	f := float64(r)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Win/loss classification, applied uniformly across the package:
// ProfitLoss > 0 is a win, < 0 is a loss, == 0 is break-even.

func isWin(t journal.Trade) bool {
	return t.ProfitLoss > 0
}

func isLoss(t journal.Trade) bool {
	return t.ProfitLoss < 0
}

// sortedByEntryTime returns a copy of trades ordered by entry time
// ascending. The input slice is left untouched.
func sortedByEntryTime(trades []journal.Trade) []journal.Trade {
	sorted := make([]journal.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EntryTime.Before(sorted[j].EntryTime)
	})
	return sorted
}

// dayKey truncates a timestamp to its calendar day
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthKey truncates a timestamp to its calendar month
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
