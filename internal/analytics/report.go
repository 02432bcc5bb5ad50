package analytics

import (
	"github.com/traderscope/journal/backend/internal/journal"
)

// PerformanceMetrics is the comprehensive snapshot of a trade history.
// MaxDrawdownDuration and CurrentDrawdown are not computed yet; they are
// nil (JSON null) rather than a zero that could read as a measurement.
type PerformanceMetrics struct {
	TotalTrades     int `json:"total_trades"`
	WinningTrades   int `json:"winning_trades"`
	LosingTrades    int `json:"losing_trades"`
	BreakEvenTrades int `json:"break_even_trades"`

	WinRate      float64 `json:"win_rate"`
	ProfitFactor Ratio   `json:"profit_factor"`

	TotalPnL    float64 `json:"total_pnl"`
	GrossProfit float64 `json:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss"`

	AverageWin  float64 `json:"average_win"`
	AverageLoss float64 `json:"average_loss"`
	LargestWin  float64 `json:"largest_win"`
	LargestLoss float64 `json:"largest_loss"` // signed, most negative losing P&L

	RiskRewardRatio Ratio   `json:"risk_reward_ratio"`
	ExpectedValue   float64 `json:"expected_value"`

	MaxDrawdown    float64 `json:"max_drawdown"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`

	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio Ratio   `json:"sortino_ratio"`

	// Not computed: explicit null markers, not zeros
	MaxDrawdownDuration *float64 `json:"max_drawdown_duration"`
	CurrentDrawdown     *float64 `json:"current_drawdown"`
}

// CalculateMetrics composes the primitive statistics, drawdown and risk
// ratios into one snapshot. An empty history returns a fully zeroed
// snapshot rather than an error. initialCapital <= 0 falls back to
// DefaultInitialCapital.
func CalculateMetrics(trades []journal.Trade, initialCapital float64) PerformanceMetrics {
	if initialCapital <= 0 {
		initialCapital = DefaultInitialCapital
	}

	var m PerformanceMetrics
	if len(trades) == 0 {
		return m
	}

	var totalPnL, largestWin, largestLoss float64

	for _, t := range trades {
		totalPnL += t.ProfitLoss

		switch {
		case isWin(t):
			m.WinningTrades++
			if t.ProfitLoss > largestWin {
				largestWin = t.ProfitLoss
			}
		case isLoss(t):
			m.LosingTrades++
			if t.ProfitLoss < largestLoss {
				largestLoss = t.ProfitLoss
			}
		default:
			m.BreakEvenTrades++
		}
	}

	drawdown := maxDrawdownWithCapital(trades, initialCapital)

	m.TotalTrades = len(trades)
	m.WinRate = WinRate(trades)
	m.ProfitFactor = Ratio(ProfitFactor(trades))
	m.TotalPnL = totalPnL
	m.GrossProfit = GrossProfit(trades)
	m.GrossLoss = GrossLoss(trades)
	m.AverageWin = AverageWin(trades)
	m.AverageLoss = AverageLoss(trades)
	m.LargestWin = largestWin
	m.LargestLoss = largestLoss
	m.RiskRewardRatio = Ratio(RiskRewardRatio(trades))
	m.ExpectedValue = ExpectedValue(trades)
	m.MaxDrawdown = drawdown.Amount
	m.MaxDrawdownPct = drawdown.Percentage
	m.SharpeRatio = SharpeRatio(trades, DefaultRiskFreeRate)
	m.SortinoRatio = Ratio(SortinoRatio(trades, DefaultRiskFreeRate))

	return m
}
