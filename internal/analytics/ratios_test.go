package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traderscope/journal/backend/internal/journal"
)

func TestDailyReturns(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-02T10:00", -50),
		tradeAt(t, "2024-01-01T09:30", 100),
		tradeAt(t, "2024-01-01T15:00", 20),
	}

	returns := DailyReturns(trades)

	// Two trading days, ordered by date; Jan 3 does not appear
	assert.Equal(t, []float64{120, -50}, returns)
}

func TestSharpeRatio(t *testing.T) {
	t.Run("requires two distinct trading days", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T09:30", 100),
			tradeAt(t, "2024-01-01T15:00", -20),
		}
		assert.Equal(t, 0.0, SharpeRatio(trades, DefaultRiskFreeRate))
	})

	t.Run("zero variance yields zero", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 50),
			tradeAt(t, "2024-01-02T10:00", 50),
			tradeAt(t, "2024-01-03T10:00", 50),
		}
		assert.Equal(t, 0.0, SharpeRatio(trades, DefaultRiskFreeRate))
	})

	t.Run("matches hand computation", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", -50),
		}

		mean := 25.0
		// Sample variance (n-1): (75^2 + 75^2) / 1
		stdDev := math.Sqrt((75.0*75.0 + 75.0*75.0) / 1.0)
		dailyRF := DefaultRiskFreeRate / TradingDaysPerYear
		want := (mean - dailyRF) / stdDev * math.Sqrt(TradingDaysPerYear)

		assert.InDelta(t, want, SharpeRatio(trades, DefaultRiskFreeRate), 1e-12)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, SharpeRatio(nil, DefaultRiskFreeRate))
	})
}

func TestSortinoRatio(t *testing.T) {
	t.Run("no negative days is infinite", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", 50),
		}
		assert.True(t, math.IsInf(SortinoRatio(trades, DefaultRiskFreeRate), 1))
	})

	t.Run("matches hand computation", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-02T10:00", -50),
			tradeAt(t, "2024-01-03T10:00", -30),
		}

		mean := (100.0 - 50.0 - 30.0) / 3.0
		// Downside deviation against target 0, negative days only
		downside := math.Sqrt((50.0*50.0 + 30.0*30.0) / 2.0)
		dailyRF := DefaultRiskFreeRate / TradingDaysPerYear
		want := (mean - dailyRF) / downside * math.Sqrt(TradingDaysPerYear)

		assert.InDelta(t, want, SortinoRatio(trades, DefaultRiskFreeRate), 1e-12)
	})

	t.Run("requires two distinct trading days", func(t *testing.T) {
		trades := []journal.Trade{tradeAt(t, "2024-01-01T10:00", -100)}
		assert.Equal(t, 0.0, SortinoRatio(trades, DefaultRiskFreeRate))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, SortinoRatio(nil, DefaultRiskFreeRate))
	})
}
