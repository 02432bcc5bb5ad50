package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderscope/journal/backend/internal/analytics"
	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/database"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a performance report for a user",
	Long: `Loads a user's trade history and prints the full performance
snapshot with monthly, symbol and strategy breakdowns.

Example:
  go run ./cmd/journal report --user demo
  go run ./cmd/journal report --user demo --capital 25000`,
	RunE: runReport,
}

var (
	reportUser    string
	reportCapital float64
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportUser, "user", "", "user id (required)")
	reportCmd.Flags().Float64Var(&reportCapital, "capital", 0, "initial capital override")
	reportCmd.MarkFlagRequired("user")
}

func runReport(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Load trades
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := journal.NewRepository(db.Pool)

	trades, err := repo.ListTrades(ctx, reportUser, journal.TradeFilter{})
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"user":   reportUser,
		"trades": len(trades),
	}).Debug("Loaded trade history")

	if len(trades) == 0 {
		fmt.Printf("No trades found for user %s\n", reportUser)
		return nil
	}

	capital := reportCapital
	if capital <= 0 {
		capital = cfg.Journal.InitialCapital
	}

	// 5. Compute and print
	printMetrics(analytics.CalculateMetrics(trades, capital), trades, cfg)
	printMonthly(analytics.ByMonth(trades))
	printSymbols(analytics.BySymbol(trades))
	printStrategies(analytics.ByStrategy(trades))

	return nil
}

func printMetrics(m analytics.PerformanceMetrics, trades []journal.Trade, cfg *config.Config) {
	PrintHeader(fmt.Sprintf("Performance Report · %s", reportUser))

	PrintKeyValue("Total trades", fmt.Sprintf("%d (%dW / %dL / %dBE)",
		m.TotalTrades, m.WinningTrades, m.LosingTrades, m.BreakEvenTrades), 18)
	PrintKeyValue("Win rate", formatPercent(m.WinRate), 18)
	PrintKeyValue("Total P&L", formatMoney(m.TotalPnL), 18)
	PrintKeyValue("Gross profit", formatMoney(m.GrossProfit), 18)
	PrintKeyValue("Gross loss", formatMoney(m.GrossLoss), 18)
	PrintKeyValue("Profit factor", formatRatio(float64(m.ProfitFactor)), 18)
	PrintKeyValue("Avg win / loss", fmt.Sprintf("%s / %s",
		formatMoney(m.AverageWin), formatMoney(m.AverageLoss)), 18)
	PrintKeyValue("Largest win", formatMoney(m.LargestWin), 18)
	PrintKeyValue("Largest loss", formatMoney(m.LargestLoss), 18)
	PrintKeyValue("Risk/reward", formatRatio(float64(m.RiskRewardRatio)), 18)
	PrintKeyValue("Expected value", formatMoney(m.ExpectedValue), 18)
	PrintKeyValue("Max drawdown", fmt.Sprintf("%s (%s)",
		formatMoney(m.MaxDrawdown), formatPercent(m.MaxDrawdownPct)), 18)
	PrintKeyValue("Sharpe ratio", fmt.Sprintf("%.2f", m.SharpeRatio), 18)
	PrintKeyValue("Sortino ratio", formatRatio(float64(m.SortinoRatio)), 18)

	// Configured risk-free rate for comparison when it differs from the default
	if cfg.Journal.RiskFreeRate != analytics.DefaultRiskFreeRate {
		sharpe := analytics.SharpeRatio(trades, cfg.Journal.RiskFreeRate)
		PrintKeyValue(fmt.Sprintf("Sharpe @ %.1f%% rf", cfg.Journal.RiskFreeRate*100),
			fmt.Sprintf("%.2f", sharpe), 18)
	}
}

func printMonthly(months []analytics.MonthlyPerformance) {
	if len(months) == 0 {
		return
	}

	PrintHeader("Monthly")

	widths := []int{10, 8, 9, 12, 6, 12}
	PrintTableHeader([]string{"Month", "Trades", "Win rate", "P&L", "Days", "Avg daily"}, widths)

	for _, p := range months {
		PrintTableRow([]string{
			p.Month,
			fmt.Sprintf("%d", p.Trades),
			formatPercent(p.WinRate),
			formatMoney(p.PnL),
			fmt.Sprintf("%d", p.TradingDays),
			formatMoney(p.AvgDailyPnL),
		}, widths)
	}
}

func printSymbols(symbols []analytics.SymbolPerformance) {
	if len(symbols) == 0 {
		return
	}

	PrintHeader("Symbols")

	widths := []int{10, 8, 9, 12, 12, 8}
	PrintTableHeader([]string{"Symbol", "Trades", "Win rate", "P&L", "Avg", "PF"}, widths)

	for _, p := range symbols {
		PrintTableRow([]string{
			p.Symbol,
			fmt.Sprintf("%d", p.Trades),
			formatPercent(p.WinRate),
			formatMoney(p.PnL),
			formatMoney(p.AvgReturn),
			formatRatio(float64(p.ProfitFactor)),
		}, widths)
	}
}

func printStrategies(strategies []analytics.StrategyPerformance) {
	if len(strategies) == 0 {
		return
	}

	PrintHeader("Strategies")

	widths := []int{16, 8, 9, 12, 12, 8}
	PrintTableHeader([]string{"Strategy", "Trades", "Win rate", "P&L", "Avg", "Sharpe"}, widths)

	for _, p := range strategies {
		PrintTableRow([]string{
			p.Strategy,
			fmt.Sprintf("%d", p.Trades),
			formatPercent(p.WinRate),
			formatMoney(p.PnL),
			formatMoney(p.AvgReturn),
			fmt.Sprintf("%.2f", p.SharpeRatio),
		}, widths)
	}
}
