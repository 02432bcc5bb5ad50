package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderscope/journal/backend/internal/journal"
)

func TestCalculateMetrics(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
		tradeAt(t, "2024-01-03T10:00", 200),
		tradeAt(t, "2024-01-04T10:00", 0),
	}

	m := CalculateMetrics(trades, 10000)

	assert.Equal(t, 4, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.Equal(t, 1, m.BreakEvenTrades)

	assert.Equal(t, 50.0, m.WinRate)
	assert.InDelta(t, 6.0, float64(m.ProfitFactor), 1e-12) // 300 / 50

	assert.Equal(t, 250.0, m.TotalPnL)
	assert.Equal(t, 300.0, m.GrossProfit)
	assert.Equal(t, 50.0, m.GrossLoss)

	assert.Equal(t, 150.0, m.AverageWin)
	assert.Equal(t, 50.0, m.AverageLoss)
	assert.Equal(t, 200.0, m.LargestWin)
	assert.Equal(t, -50.0, m.LargestLoss)

	assert.InDelta(t, 3.0, float64(m.RiskRewardRatio), 1e-12)

	assert.Equal(t, 50.0, m.MaxDrawdown)
	assert.InDelta(t, 50.0/10100*100, m.MaxDrawdownPct, 1e-12)

	// Not computed: explicit null markers
	assert.Nil(t, m.MaxDrawdownDuration)
	assert.Nil(t, m.CurrentDrawdown)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m := CalculateMetrics(nil, 10000)

	assert.Equal(t, 0, m.TotalTrades)
	assert.Equal(t, 0.0, m.WinRate)
	assert.Equal(t, 0.0, float64(m.ProfitFactor))
	assert.Equal(t, 0.0, m.TotalPnL)
	assert.Equal(t, 0.0, m.MaxDrawdown)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Nil(t, m.MaxDrawdownDuration)
	assert.Nil(t, m.CurrentDrawdown)
}

func TestCalculateMetricsIdempotent(t *testing.T) {
	trades := []journal.Trade{
		tradeAt(t, "2024-01-03T10:00", 200),
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", -50),
	}

	first := CalculateMetrics(trades, 10000)
	second := CalculateMetrics(trades, 10000)

	assert.Equal(t, first, second)

	// Input order is preserved: no function mutates its input
	assert.Equal(t, 200.0, trades[0].ProfitLoss)
	assert.Equal(t, 100.0, trades[1].ProfitLoss)
	assert.Equal(t, -50.0, trades[2].ProfitLoss)
}

func TestPerformanceMetricsJSON(t *testing.T) {
	// All-winning history: profit factor and sortino are +Inf in-process
	trades := []journal.Trade{
		tradeAt(t, "2024-01-01T10:00", 100),
		tradeAt(t, "2024-01-02T10:00", 50),
	}

	m := CalculateMetrics(trades, 10000)
	require.True(t, math.IsInf(float64(m.ProfitFactor), 1))
	require.True(t, math.IsInf(float64(m.SortinoRatio), 1))

	// Infinities must not break JSON encoding
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Nil(t, decoded["profit_factor"])
	assert.Nil(t, decoded["sortino_ratio"])
	assert.Nil(t, decoded["max_drawdown_duration"])
	assert.Nil(t, decoded["current_drawdown"])
	assert.Equal(t, 100.0, decoded["win_rate"])
}

func TestRatioMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		ratio Ratio
		want  string
	}{
		{"finite", Ratio(1.5), "1.5"},
		{"zero", Ratio(0), "0"},
		{"positive infinity", Ratio(math.Inf(1)), "null"},
		{"negative infinity", Ratio(math.Inf(-1)), "null"},
		{"nan", Ratio(math.NaN()), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}
