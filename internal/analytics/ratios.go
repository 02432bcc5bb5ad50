package analytics

import (
	"math"
	"sort"

	"github.com/traderscope/journal/backend/internal/journal"
)

// DailyReturns groups trades by entry date and returns the summed P&L per
// trading day, ordered by date. Unlike the equity curve, days without
// trades are omitted: risk ratios are measured over trading days only.
func DailyReturns(trades []journal.Trade) []float64 {
	byDay := make(map[string]float64)
	for _, t := range trades {
		byDay[dayKey(t.EntryTime)] += t.ProfitLoss
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	returns := make([]float64, len(days))
	for i, day := range days {
		returns[i] = byDay[day]
	}

	return returns
}

// SharpeRatio returns the annualized Sharpe ratio of daily returns.
// Fewer than two distinct trading days, or zero variance, yield 0.
// riskFreeRate is annual and converted to daily over 252 trading days.
func SharpeRatio(trades []journal.Trade, riskFreeRate float64) float64 {
	returns := DailyReturns(trades)
	if len(returns) < 2 {
		return 0
	}

	mean := meanOf(returns)
	stdDev := sampleStdDev(returns, mean)
	if stdDev == 0 {
		return 0
	}

	dailyRiskFree := riskFreeRate / TradingDaysPerYear
	dailySharpe := (mean - dailyRiskFree) / stdDev

	return dailySharpe * math.Sqrt(TradingDaysPerYear)
}

// SortinoRatio is like Sharpe but penalizes only downside volatility:
// the deviation is computed from negative-return days alone, against a
// target return of 0. With no negative days it is +Inf (no downside risk
// detected); zero downside deviation yields 0.
func SortinoRatio(trades []journal.Trade, riskFreeRate float64) float64 {
	returns := DailyReturns(trades)
	if len(returns) < 2 {
		return 0
	}

	mean := meanOf(returns)

	var sumSquares float64
	negatives := 0
	for _, r := range returns {
		if r < 0 {
			sumSquares += r * r
			negatives++
		}
	}

	if negatives == 0 {
		return math.Inf(1)
	}

	downsideDev := math.Sqrt(sumSquares / float64(negatives))
	if downsideDev == 0 {
		return 0
	}

	dailyRiskFree := riskFreeRate / TradingDaysPerYear
	dailySortino := (mean - dailyRiskFree) / downsideDev

	return dailySortino * math.Sqrt(TradingDaysPerYear)
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator
func sampleStdDev(values []float64, mean float64) float64 {
	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}
