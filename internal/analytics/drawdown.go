package analytics

import (
	"time"

	"github.com/traderscope/journal/backend/internal/journal"
)

// Drawdown is the largest decline from a running cumulative-P&L peak
type Drawdown struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MaxDrawdown walks the trade history in entry-time order and returns the
// maximum peak-to-trough decline of cumulative P&L. The percentage is
// relative to the account base (DefaultInitialCapital plus the peak at the
// time the max drawdown occurred); both fields are updated together, only
// when a new maximum amount is seen.
func MaxDrawdown(trades []journal.Trade) Drawdown {
	return maxDrawdownWithCapital(trades, DefaultInitialCapital)
}

func maxDrawdownWithCapital(trades []journal.Trade, initialCapital float64) Drawdown {
	if len(trades) == 0 {
		return Drawdown{}
	}

	sorted := sortedByEntryTime(trades)

	var cumulative, peak float64
	var maxDD Drawdown

	for _, t := range sorted {
		cumulative += t.ProfitLoss
		if cumulative > peak {
			peak = cumulative
		}

		drawdown := peak - cumulative
		if drawdown > maxDD.Amount {
			maxDD.Amount = drawdown
			maxDD.Percentage = drawdown / (initialCapital + peak) * 100
		}
	}

	return maxDD
}

// EquityPoint is one calendar day of the equity curve
type EquityPoint struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	DailyPnL      float64 `json:"daily_pnl"`
	CumulativePnL float64 `json:"cumulative_pnl"`
	Equity        float64 `json:"equity"`
	Drawdown      float64 `json:"drawdown"`
	DrawdownPct   float64 `json:"drawdown_pct"`
}

// EquityCurve builds one point per calendar day from the first to the last
// trade's entry date inclusive. Days without trades carry zero daily P&L
// and leave cumulative P&L and drawdown unchanged. initialCapital <= 0
// falls back to DefaultInitialCapital. An empty history yields an empty
// curve.
func EquityCurve(trades []journal.Trade, initialCapital float64) []EquityPoint {
	if len(trades) == 0 {
		return []EquityPoint{}
	}

	if initialCapital <= 0 {
		initialCapital = DefaultInitialCapital
	}

	sorted := sortedByEntryTime(trades)

	// Daily P&L keyed by entry date
	dailyPnL := make(map[string]float64)
	for _, t := range sorted {
		dailyPnL[dayKey(t.EntryTime)] += t.ProfitLoss
	}

	first := truncateToDay(sorted[0].EntryTime)
	last := truncateToDay(sorted[len(sorted)-1].EntryTime)

	curve := make([]EquityPoint, 0, int(last.Sub(first).Hours()/24)+1)

	var cumulative, peak float64

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		daily := dailyPnL[key]

		cumulative += daily
		if cumulative > peak {
			peak = cumulative
		}

		drawdown := peak - cumulative
		peakEquity := initialCapital + peak

		drawdownPct := 0.0
		if peakEquity != 0 {
			drawdownPct = drawdown / peakEquity * 100
		}

		curve = append(curve, EquityPoint{
			Date:          key,
			DailyPnL:      daily,
			CumulativePnL: cumulative,
			Equity:        initialCapital + cumulative,
			Drawdown:      drawdown,
			DrawdownPct:   drawdownPct,
		})
	}

	return curve
}

// truncateToDay strips the time-of-day component
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
