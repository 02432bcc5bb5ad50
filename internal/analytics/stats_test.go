package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderscope/journal/backend/internal/journal"
)

// tradeAt builds a minimal trade for metric tests
func tradeAt(t *testing.T, entry string, pnl float64) journal.Trade {
	t.Helper()

	ts, err := time.Parse("2006-01-02T15:04", entry)
	require.NoError(t, err)

	return journal.Trade{
		Symbol:     "AAPL",
		Side:       journal.SideLong,
		EntryTime:  ts,
		ExitTime:   ts.Add(time.Hour),
		Quantity:   1,
		ProfitLoss: pnl,
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		name   string
		pnls   []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"all wins", []float64{10, 20}, 100},
		{"all losses", []float64{-10, -20}, 0},
		{"half and half", []float64{100, -50}, 50},
		{"break-even is not a win", []float64{0}, 0},
		{"break-even dilutes rate", []float64{100, 0, 0, 0}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := make([]journal.Trade, len(tt.pnls))
			for i, pnl := range tt.pnls {
				trades[i] = tradeAt(t, "2024-01-01T10:00", pnl)
			}

			got := WinRate(trades)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestProfitFactor(t *testing.T) {
	t.Run("example from dashboard", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", -50),
		}
		assert.Equal(t, 2.0, ProfitFactor(trades))
	})

	t.Run("no losses with profit is infinite", func(t *testing.T) {
		trades := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 100)}
		assert.True(t, math.IsInf(ProfitFactor(trades), 1))
	})

	t.Run("single break-even trade", func(t *testing.T) {
		trades := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 0)}
		assert.Equal(t, 0.0, ProfitFactor(trades))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, ProfitFactor(nil))
	})

	t.Run("finite and non-negative with at least one loss", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 30),
			tradeAt(t, "2024-01-02T10:00", -90),
		}
		pf := ProfitFactor(trades)
		assert.False(t, math.IsInf(pf, 0))
		assert.GreaterOrEqual(t, pf, 0.0)
		assert.InDelta(t, 1.0/3.0, pf, 1e-12)
	})
}

func TestAverageWinLoss(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
		tradeAt(t, "2024-01-03T10:00", 200),
		tradeAt(t, "2024-01-04T10:00", -150),
		tradeAt(t, "2024-01-05T10:00", 0),
	}

	assert.Equal(t, 150.0, AverageWin(trades))
	// Loss average is a positive magnitude
	assert.Equal(t, 100.0, AverageLoss(trades))

	assert.Equal(t, 0.0, AverageWin(nil))
	assert.Equal(t, 0.0, AverageLoss(nil))

	onlyWins := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 10)}
	assert.Equal(t, 0.0, AverageLoss(onlyWins))
	assert.GreaterOrEqual(t, AverageWin(onlyWins), 0.0)
}

func TestRiskRewardRatio(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
	}
	assert.Equal(t, 2.0, RiskRewardRatio(trades))

	noLosses := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 100)}
	assert.True(t, math.IsInf(RiskRewardRatio(noLosses), 1))

	assert.Equal(t, 0.0, RiskRewardRatio(nil))
}

func TestExpectedValue(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
	}

	// 0.5*100 - 0.5*50 = 25
	assert.InDelta(t, 25.0, ExpectedValue(trades), 1e-12)

	assert.Equal(t, 0.0, ExpectedValue(nil))
}

func TestGrossSums(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
		tradeAt(t, "2024-01-03T10:00", -25),
	}

	assert.Equal(t, 100.0, GrossProfit(trades))
	assert.Equal(t, 75.0, GrossLoss(trades))
}
