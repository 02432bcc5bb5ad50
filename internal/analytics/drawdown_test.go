package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traderscope/journal/backend/internal/journal"
)

func TestMaxDrawdown(t *testing.T) {
	t.Run("peak then trough", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", -50),
		}

		dd := MaxDrawdown(trades)
		assert.Equal(t, 50.0, dd.Amount)
		// 50 / (10000 + 100) * 100
		assert.InDelta(t, 50.0/10100*100, dd.Percentage, 1e-12)
	})

	t.Run("empty", func(t *testing.T) {
		dd := MaxDrawdown(nil)
		assert.Equal(t, 0.0, dd.Amount)
		assert.Equal(t, 0.0, dd.Percentage)
	})

	t.Run("monotonic gains have no drawdown", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 10),
			tradeAt(t, "2024-01-02T10:00", 20),
			tradeAt(t, "2024-01-03T10:00", 30),
		}

		dd := MaxDrawdown(trades)
		assert.Equal(t, 0.0, dd.Amount)
	})

	t.Run("walks in entry order regardless of input order", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-03T10:00", 80),
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", -60),
		}

		// Ordered by entry: +100, -60 (drawdown 60), +80 (recovered)
		dd := MaxDrawdown(trades)
		assert.Equal(t, 60.0, dd.Amount)
	})

	t.Run("percentage tracks the max amount step", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 200),
			tradeAt(t, "2024-01-02T10:00", -150),
			tradeAt(t, "2024-01-03T10:00", 500),
			tradeAt(t, "2024-01-04T10:00", -200),
		}

		// Drawdowns: 150 off peak 200, then 200 off peak 550
		dd := MaxDrawdown(trades)
		assert.Equal(t, 200.0, dd.Amount)
		assert.InDelta(t, 200.0/(10000+550)*100, dd.Percentage, 1e-12)
	})
}

func TestEquityCurve(t *testing.T) {
	t.Run("one point per calendar day inclusive", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			// no trades on Jan 2-3
			tradeAt(t, "2024-01-04T10:00", -50),
		}

		curve := EquityCurve(trades, DefaultInitialCapital)
		assert.Len(t, curve, 4)

		assert.Equal(t, "2024-01-01", curve[0].Date)
		assert.Equal(t, "2024-01-02", curve[1].Date)
		assert.Equal(t, "2024-01-03", curve[2].Date)
		assert.Equal(t, "2024-01-04", curve[3].Date)
	})

	t.Run("gap days carry cumulative state", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-03T10:00", -50),
		}

		curve := EquityCurve(trades, 10000)

		// Day 2 has no trades: zero daily, unchanged cumulative
		assert.Equal(t, 0.0, curve[1].DailyPnL)
		assert.Equal(t, 100.0, curve[1].CumulativePnL)
		assert.Equal(t, 10100.0, curve[1].Equity)
		assert.Equal(t, 0.0, curve[1].Drawdown)

		// Day 3 draws down off the peak
		assert.Equal(t, -50.0, curve[2].DailyPnL)
		assert.Equal(t, 50.0, curve[2].CumulativePnL)
		assert.Equal(t, 10050.0, curve[2].Equity)
		assert.Equal(t, 50.0, curve[2].Drawdown)
		assert.InDelta(t, 50.0/10100*100, curve[2].DrawdownPct, 1e-12)
	})

	t.Run("multiple trades on one day are summed", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T09:30", 100),
			tradeAt(t, "2024-01-01T14:00", -30),
		}

		curve := EquityCurve(trades, 10000)
		assert.Len(t, curve, 1)
		assert.Equal(t, 70.0, curve[0].DailyPnL)
	})

	t.Run("non-positive capital falls back to default", func(t *testing.T) {
		trades := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 100)}

		curve := EquityCurve(trades, 0)
		assert.Equal(t, DefaultInitialCapital+100, curve[0].Equity)
	})

	t.Run("empty history yields empty curve", func(t *testing.T) {
		assert.Empty(t, EquityCurve(nil, 10000))
	})
}
