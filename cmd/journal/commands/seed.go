package commands

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/database"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo trades for a user",
	Long: `Inserts a batch of randomized demo trades so the analytics
endpoints have something to chew on during development.

Example:
  go run ./cmd/journal seed --user demo --count 50`,
	RunE: runSeed,
}

var (
	seedUser  string
	seedCount int
)

var seedSymbols = []string{"AAPL", "TSLA", "NVDA", "SPY", "QQQ", "AMD"}

var seedStrategies = []string{"Breakout", "Mean Reversion", "Momentum", "Earnings Play"}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedUser, "user", "", "user id (required)")
	seedCmd.Flags().IntVar(&seedCount, "count", 50, "number of trades to insert")
	seedCmd.MarkFlagRequired("user")
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	repo := journal.NewRepository(db.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 4. Generate and insert
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now().AddDate(0, -3, 0)

	for i := 0; i < seedCount; i++ {
		trade := randomTrade(rng, start, i)
		trade.UserID = seedUser

		if err := repo.CreateTrade(ctx, trade); err != nil {
			return fmt.Errorf("insert trade %d: %w", i+1, err)
		}
	}

	log.WithFields(map[string]interface{}{
		"user":  seedUser,
		"count": seedCount,
	}).Info("Demo trades inserted")

	PrintSuccess(fmt.Sprintf("Inserted %d trades for user %s", seedCount, seedUser))
	return nil
}

// randomTrade builds one plausible closed trade. Entry times walk forward
// from start so the equity curve spans several months.
func randomTrade(rng *rand.Rand, start time.Time, i int) *journal.Trade {
	entry := start.AddDate(0, 0, i*2).Add(time.Duration(9+rng.Intn(7)) * time.Hour).
		Add(time.Duration(rng.Intn(60)) * time.Minute)
	exit := entry.Add(time.Duration(10+rng.Intn(300)) * time.Minute)

	side := journal.SideLong
	if rng.Float64() < 0.35 {
		side = journal.SideShort
	}

	entryPrice := 50 + rng.Float64()*400
	quantity := float64(1 + rng.Intn(100))

	// Slight positive skew so demo accounts trend up
	pnl := (rng.Float64() - 0.45) * 300

	move := pnl / quantity
	exitPrice := entryPrice + move
	if side == journal.SideShort {
		exitPrice = entryPrice - move
	}

	return &journal.Trade{
		Symbol:     seedSymbols[rng.Intn(len(seedSymbols))],
		Side:       side,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		EntryTime:  entry,
		ExitTime:   exit,
		Quantity:   quantity,
		ProfitLoss: pnl,
		Strategy:   seedStrategies[rng.Intn(len(seedStrategies))],
	}
}
