package analytics

import (
	"fmt"
	"time"

	"github.com/traderscope/journal/backend/internal/journal"
)

// heatmapDays is Monday-first; time.Weekday (Sunday = 0) maps to index 6.
var heatmapDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// heatmapHours are the 24 hour labels, 12am through 11pm
var heatmapHours = []string{
	"12am", "1am", "2am", "3am", "4am", "5am", "6am", "7am", "8am", "9am", "10am", "11am",
	"12pm", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm", "10pm", "11pm",
}

// HeatmapCell is one (day-of-week, hour-of-day) cell of the 7x24 grid
type HeatmapCell struct {
	Day     string  `json:"day"`
	Hour    string  `json:"hour"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"win_rate"`
	PnL     float64 `json:"pnl"`
}

// Heatmap aggregates trades onto a fixed 7x24 grid by entry weekday and
// hour. All 168 cells are emitted, zero-filled where no trades occurred,
// so consumers can render the full grid without gap-filling. This holds
// for an empty trade history too.
func Heatmap(trades []journal.Trade) []HeatmapCell {
	type bucket struct {
		trades int
		wins   int
		pnl    float64
	}

	grid := [7][24]bucket{}

	for _, t := range trades {
		day := mondayFirstIndex(t.EntryTime.Weekday())
		hour := t.EntryTime.Hour()

		grid[day][hour].trades++
		grid[day][hour].pnl += t.ProfitLoss
		if isWin(t) {
			grid[day][hour].wins++
		}
	}

	cells := make([]HeatmapCell, 0, 7*24)

	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			b := grid[day][hour]

			winRate := 0.0
			if b.trades > 0 {
				winRate = 100 * float64(b.wins) / float64(b.trades)
			}

			cells = append(cells, HeatmapCell{
				Day:     heatmapDays[day],
				Hour:    heatmapHours[hour],
				Trades:  b.trades,
				WinRate: winRate,
				PnL:     b.pnl,
			})
		}
	}

	return cells
}

// mondayFirstIndex converts time.Weekday (Sunday = 0) to a Monday-first
// index (Monday = 0 .. Sunday = 6)
func mondayFirstIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// DefaultDistributionBins is the default histogram resolution
const DefaultDistributionBins = 10

// DistributionBin is one histogram bucket over the P&L range
type DistributionBin struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PnLDistribution builds an equal-width histogram over
// [min(ProfitLoss), max(ProfitLoss)], ordered by bin range ascending.
// A trade whose P&L equals the maximum is clamped into the last bin so
// float arithmetic cannot spill it into a phantom extra bin. If all trades
// share the same P&L the histogram collapses to a single bin. bins <= 0
// falls back to DefaultDistributionBins.
func PnLDistribution(trades []journal.Trade, bins int) []DistributionBin {
	if len(trades) == 0 {
		return []DistributionBin{}
	}

	if bins <= 0 {
		bins = DefaultDistributionBins
	}

	min, max := trades[0].ProfitLoss, trades[0].ProfitLoss
	for _, t := range trades[1:] {
		if t.ProfitLoss < min {
			min = t.ProfitLoss
		}
		if t.ProfitLoss > max {
			max = t.ProfitLoss
		}
	}

	total := len(trades)

	// Degenerate range: every trade has the same P&L
	if min == max {
		return []DistributionBin{{
			Min:        min,
			Max:        max,
			Label:      binLabel(min, max),
			Count:      total,
			Percentage: 100,
		}}
	}

	width := (max - min) / float64(bins)

	counts := make([]int, bins)
	for _, t := range trades {
		idx := int((t.ProfitLoss - min) / width)
		if idx >= bins {
			idx = bins - 1 // clamp the exact-maximum trade
		}
		counts[idx]++
	}

	result := make([]DistributionBin, bins)
	for i := 0; i < bins; i++ {
		lo := min + float64(i)*width
		hi := lo + width

		result[i] = DistributionBin{
			Min:        lo,
			Max:        hi,
			Label:      binLabel(lo, hi),
			Count:      counts[i],
			Percentage: 100 * float64(counts[i]) / float64(total),
		}
	}

	return result
}

func binLabel(lo, hi float64) string {
	return fmt.Sprintf("%.2f to %.2f", lo, hi)
}
