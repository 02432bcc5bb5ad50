package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderscope/journal/backend/internal/journal"
)

func TestHeatmap(t *testing.T) {
	t.Run("always 168 cells", func(t *testing.T) {
		assert.Len(t, Heatmap(nil), 168)

		trades := []journal.Trade{tradeAt(t, "2024-01-01T10:00", 100)}
		assert.Len(t, Heatmap(trades), 168)
	})

	t.Run("monday-first grid order", func(t *testing.T) {
		cells := Heatmap(nil)

		assert.Equal(t, "Monday", cells[0].Day)
		assert.Equal(t, "12am", cells[0].Hour)
		assert.Equal(t, "11pm", cells[23].Hour)
		assert.Equal(t, "Tuesday", cells[24].Day)
		assert.Equal(t, "Sunday", cells[144].Day)
	})

	t.Run("trades land in the right cell", func(t *testing.T) {
		// 2024-01-01 is a Monday; 2024-01-07 is a Sunday
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 100),
			tradeAt(t, "2024-01-01T10:30", -40),
			tradeAt(t, "2024-01-07T22:00", 75),
		}

		cells := Heatmap(trades)

		// Monday 10am = row 0, hour 10
		monday10 := cells[0*24+10]
		assert.Equal(t, "Monday", monday10.Day)
		assert.Equal(t, "10am", monday10.Hour)
		assert.Equal(t, 2, monday10.Trades)
		assert.Equal(t, 60.0, monday10.PnL)
		assert.Equal(t, 50.0, monday10.WinRate)

		// Sunday 10pm = row 6, hour 22
		sunday22 := cells[6*24+22]
		assert.Equal(t, "Sunday", sunday22.Day)
		assert.Equal(t, "10pm", sunday22.Hour)
		assert.Equal(t, 1, sunday22.Trades)
		assert.Equal(t, 75.0, sunday22.PnL)
	})

	t.Run("zero-trade cells are zero-filled", func(t *testing.T) {
		cells := Heatmap([]journal.Trade{tradeAt(t, "2024-01-01T10:00", 100)})

		empty := cells[3*24+5] // Thursday 5am
		assert.Equal(t, 0, empty.Trades)
		assert.Equal(t, 0.0, empty.WinRate)
		assert.Equal(t, 0.0, empty.PnL)
	})
}

func TestPnLDistribution(t *testing.T) {
	t.Run("bin boundaries over symmetric range", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", -100),
			tradeAt(t, "2024-01-02T10:00", 100),
		}

		bins := PnLDistribution(trades, 10)
		require.Len(t, bins, 10)

		// Width 20: boundaries are multiples of 20
		for i, bin := range bins {
			assert.InDelta(t, -100+float64(i)*20, bin.Min, 1e-9)
			assert.InDelta(t, -100+float64(i+1)*20, bin.Max, 1e-9)
		}

		// The exact-maximum trade lands in the last bin, not a phantom 11th
		assert.Equal(t, 1, bins[0].Count)
		assert.Equal(t, 1, bins[9].Count)
	})

	t.Run("identical pnl collapses to a single bin", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", 42),
			tradeAt(t, "2024-01-02T10:00", 42),
			tradeAt(t, "2024-01-03T10:00", 42),
		}

		bins := PnLDistribution(trades, 10)
		require.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].Count)
		assert.Equal(t, 100.0, bins[0].Percentage)
		assert.Equal(t, 42.0, bins[0].Min)
		assert.Equal(t, 42.0, bins[0].Max)
	})

	t.Run("percentages sum to 100", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", -100),
			tradeAt(t, "2024-01-02T10:00", -20),
			tradeAt(t, "2024-01-03T10:00", 35),
			tradeAt(t, "2024-01-04T10:00", 100),
		}

		bins := PnLDistribution(trades, 10)

		var totalPct float64
		var totalCount int
		for _, bin := range bins {
			totalPct += bin.Percentage
			totalCount += bin.Count
		}

		assert.InDelta(t, 100.0, totalPct, 1e-9)
		assert.Equal(t, 4, totalCount)
	})

	t.Run("non-positive bin count uses default", func(t *testing.T) {
		trades := []journal.Trade{
			tradeAt(t, "2024-01-01T10:00", -100),
			tradeAt(t, "2024-01-02T10:00", 100),
		}

		bins := PnLDistribution(trades, 0)
		assert.Len(t, bins, DefaultDistributionBins)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, PnLDistribution(nil, 10))
	})
}
