package analytics

import (
	"sort"

	"github.com/traderscope/journal/backend/internal/journal"
)

// UnknownStrategy labels trades logged without a strategy
const UnknownStrategy = "Unknown"

// MonthlyPerformance summarizes one calendar month of trading
type MonthlyPerformance struct {
	Month       string  `json:"month"` // YYYY-MM
	Trades      int     `json:"trades"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	PnL         float64 `json:"pnl"`
	TradingDays int     `json:"trading_days"`
	AvgDailyPnL float64 `json:"avg_daily_pnl"`
}

// ByMonth groups trades by entry month. AvgDailyPnL divides by the number
// of distinct trading days in the month, not calendar days. Most
// profitable months first.
func ByMonth(trades []journal.Trade) []MonthlyPerformance {
	months := make(map[string][]journal.Trade)
	tradingDays := make(map[string]map[string]struct{})

	for _, t := range trades {
		key := monthKey(t.EntryTime)
		months[key] = append(months[key], t)

		if tradingDays[key] == nil {
			tradingDays[key] = make(map[string]struct{})
		}
		tradingDays[key][dayKey(t.EntryTime)] = struct{}{}
	}

	result := make([]MonthlyPerformance, 0, len(months))

	for key, group := range months {
		var pnl float64
		wins := 0
		for _, t := range group {
			pnl += t.ProfitLoss
			if isWin(t) {
				wins++
			}
		}

		days := len(tradingDays[key])

		result = append(result, MonthlyPerformance{
			Month:       key,
			Trades:      len(group),
			Wins:        wins,
			WinRate:     WinRate(group),
			PnL:         pnl,
			TradingDays: days,
			AvgDailyPnL: pnl / float64(days),
		})
	}

	sortByPnLDesc(result, func(p MonthlyPerformance) float64 { return p.PnL })
	return result
}

// SymbolPerformance summarizes trading in one instrument
type SymbolPerformance struct {
	Symbol       string  `json:"symbol"`
	Trades       int     `json:"trades"`
	Wins         int     `json:"wins"`
	WinRate      float64 `json:"win_rate"`
	PnL          float64 `json:"pnl"`
	AvgReturn    float64 `json:"avg_return"`
	ProfitFactor Ratio   `json:"profit_factor"`
}

// BySymbol groups trades by instrument, most profitable first
func BySymbol(trades []journal.Trade) []SymbolPerformance {
	groups := groupBy(trades, func(t journal.Trade) string { return t.Symbol })

	result := make([]SymbolPerformance, 0, len(groups))

	for symbol, group := range groups {
		result = append(result, SymbolPerformance{
			Symbol:       symbol,
			Trades:       len(group),
			Wins:         countWins(group),
			WinRate:      WinRate(group),
			PnL:          totalPnL(group),
			AvgReturn:    totalPnL(group) / float64(len(group)),
			ProfitFactor: Ratio(ProfitFactor(group)),
		})
	}

	sortByPnLDesc(result, func(p SymbolPerformance) float64 { return p.PnL })
	return result
}

// StrategyPerformance summarizes one strategy. Strategies are compared
// risk-adjusted, so this breakdown carries Sharpe instead of profit factor.
type StrategyPerformance struct {
	Strategy    string  `json:"strategy"`
	Trades      int     `json:"trades"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	PnL         float64 `json:"pnl"`
	AvgReturn   float64 `json:"avg_return"`
	SharpeRatio float64 `json:"sharpe_ratio"`
}

// ByStrategy groups trades by strategy label, most profitable first.
// Trades without a strategy fall under UnknownStrategy.
func ByStrategy(trades []journal.Trade) []StrategyPerformance {
	groups := groupBy(trades, func(t journal.Trade) string {
		if t.Strategy == "" {
			return UnknownStrategy
		}
		return t.Strategy
	})

	result := make([]StrategyPerformance, 0, len(groups))

	for strategy, group := range groups {
		result = append(result, StrategyPerformance{
			Strategy:    strategy,
			Trades:      len(group),
			Wins:        countWins(group),
			WinRate:     WinRate(group),
			PnL:         totalPnL(group),
			AvgReturn:   totalPnL(group) / float64(len(group)),
			SharpeRatio: SharpeRatio(group, DefaultRiskFreeRate),
		})
	}

	sortByPnLDesc(result, func(p StrategyPerformance) float64 { return p.PnL })
	return result
}

// TradeTypePerformance summarizes long vs short trading
type TradeTypePerformance struct {
	Side         journal.Side `json:"side"`
	Trades       int          `json:"trades"`
	Wins         int          `json:"wins"`
	WinRate      float64      `json:"win_rate"`
	PnL          float64      `json:"pnl"`
	AvgReturn    float64      `json:"avg_return"`
	ProfitFactor Ratio        `json:"profit_factor"`
}

// ByTradeType groups trades by direction. Long and short both appear in
// the output even with zero trades, so consumers always see both rows.
func ByTradeType(trades []journal.Trade) []TradeTypePerformance {
	groups := map[journal.Side][]journal.Trade{
		journal.SideLong:  {},
		journal.SideShort: {},
	}
	for _, t := range trades {
		groups[t.Side] = append(groups[t.Side], t)
	}

	result := make([]TradeTypePerformance, 0, len(groups))

	for side, group := range groups {
		perf := TradeTypePerformance{
			Side:         side,
			Trades:       len(group),
			WinRate:      WinRate(group),
			PnL:          totalPnL(group),
			ProfitFactor: Ratio(ProfitFactor(group)),
		}
		if len(group) > 0 {
			perf.Wins = countWins(group)
			perf.AvgReturn = totalPnL(group) / float64(len(group))
		}
		result = append(result, perf)
	}

	sortByPnLDesc(result, func(p TradeTypePerformance) float64 { return p.PnL })
	return result
}

// timeSlot is an immutable time-of-day bucket defined by decimal-hour
// bounds. An end beyond 24 wraps into the next calendar day.
type timeSlot struct {
	label string
	start float64
	end   float64
}

// timeOfDaySlots is never mutated; slot membership is computed per call.
var timeOfDaySlots = []timeSlot{
	{"Pre-Market", 4, 9.5},
	{"Morning", 9.5, 12},
	{"Afternoon", 12, 16},
	{"Evening", 16, 20},
	{"Night", 20, 28}, // wraps: 8pm through 4am
}

func (s timeSlot) contains(hour float64) bool {
	if hour >= s.start && hour < s.end {
		return true
	}
	// Wrapped portion of an overnight slot
	return s.end > 24 && hour < s.end-24
}

// TimeOfDayPerformance summarizes one session slot
type TimeOfDayPerformance struct {
	Slot         string  `json:"slot"`
	Trades       int     `json:"trades"`
	Wins         int     `json:"wins"`
	WinRate      float64 `json:"win_rate"`
	PnL          float64 `json:"pnl"`
	AvgReturn    float64 `json:"avg_return"`
	ProfitFactor Ratio   `json:"profit_factor"`
}

// ByTimeOfDay buckets trades into fixed session slots by entry hour
// (hours plus minutes as a decimal). Slots with zero trades are dropped.
// Most profitable slots first.
func ByTimeOfDay(trades []journal.Trade) []TimeOfDayPerformance {
	groups := make(map[string][]journal.Trade)

	for _, t := range trades {
		hour := float64(t.EntryTime.Hour()) + float64(t.EntryTime.Minute())/60

		for _, slot := range timeOfDaySlots {
			if slot.contains(hour) {
				groups[slot.label] = append(groups[slot.label], t)
				break
			}
		}
	}

	result := make([]TimeOfDayPerformance, 0, len(groups))

	for label, group := range groups {
		result = append(result, TimeOfDayPerformance{
			Slot:         label,
			Trades:       len(group),
			Wins:         countWins(group),
			WinRate:      WinRate(group),
			PnL:          totalPnL(group),
			AvgReturn:    totalPnL(group) / float64(len(group)),
			ProfitFactor: Ratio(ProfitFactor(group)),
		})
	}

	sortByPnLDesc(result, func(p TimeOfDayPerformance) float64 { return p.PnL })
	return result
}

// Shared grouping helpers

func groupBy(trades []journal.Trade, key func(journal.Trade) string) map[string][]journal.Trade {
	groups := make(map[string][]journal.Trade)
	for _, t := range trades {
		k := key(t)
		groups[k] = append(groups[k], t)
	}
	return groups
}

func countWins(trades []journal.Trade) int {
	wins := 0
	for _, t := range trades {
		if isWin(t) {
			wins++
		}
	}
	return wins
}

func totalPnL(trades []journal.Trade) float64 {
	var sum float64
	for _, t := range trades {
		sum += t.ProfitLoss
	}
	return sum
}

// sortByPnLDesc sorts breakdown entries most-profitable first
func sortByPnLDesc[T any](items []T, pnl func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return pnl(items[i]) > pnl(items[j])
	})
}
