package analytics

import (
	"math"

	"github.com/traderscope/journal/backend/internal/journal"
)

// WinRate returns the percentage of winning trades, in [0, 100].
// An empty history yields 0.
func WinRate(trades []journal.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}

	wins := 0
	for _, t := range trades {
		if isWin(t) {
			wins++
		}
	}

	return 100 * float64(wins) / float64(len(trades))
}

// GrossProfit returns the sum of winning trades' P&L (>= 0)
func GrossProfit(trades []journal.Trade) float64 {
	var sum float64
	for _, t := range trades {
		if isWin(t) {
			sum += t.ProfitLoss
		}
	}
	return sum
}

// GrossLoss returns the absolute sum of losing trades' P&L (>= 0)
func GrossLoss(trades []journal.Trade) float64 {
	var sum float64
	for _, t := range trades {
		if isLoss(t) {
			sum += math.Abs(t.ProfitLoss)
		}
	}
	return sum
}

// ProfitFactor returns gross profit divided by gross loss.
// With no losses it is +Inf when there is any profit, else 0.
func ProfitFactor(trades []journal.Trade) float64 {
	grossProfit := GrossProfit(trades)
	grossLoss := GrossLoss(trades)

	if grossLoss == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}

	return grossProfit / grossLoss
}

// AverageWin returns the mean P&L of winning trades, 0 if there are none
func AverageWin(trades []journal.Trade) float64 {
	var sum float64
	count := 0

	for _, t := range trades {
		if isWin(t) {
			sum += t.ProfitLoss
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// AverageLoss returns the mean magnitude of losing trades' P&L, reported
// as a positive number. 0 if there are no losses.
func AverageLoss(trades []journal.Trade) float64 {
	var sum float64
	count := 0

	for _, t := range trades {
		if isLoss(t) {
			sum += math.Abs(t.ProfitLoss)
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// RiskRewardRatio returns average win over average loss.
// With no losses it is +Inf when wins exist, else 0.
func RiskRewardRatio(trades []journal.Trade) float64 {
	avgWin := AverageWin(trades)
	avgLoss := AverageLoss(trades)

	if avgLoss == 0 {
		if avgWin > 0 {
			return math.Inf(1)
		}
		return 0
	}

	return avgWin / avgLoss
}

// ExpectedValue returns the theoretical per-trade edge:
// winRate*avgWin - (1-winRate)*avgLoss, with winRate as a decimal.
func ExpectedValue(trades []journal.Trade) float64 {
	winRate := WinRate(trades) / 100
	avgWin := AverageWin(trades)
	avgLoss := AverageLoss(trades)

	return winRate*avgWin - (1-winRate)*avgLoss
}
