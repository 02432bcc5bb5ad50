package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/internal/scheduler"
	"github.com/traderscope/journal/backend/internal/scheduler/jobs"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/database"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background job scheduler",
	Long: `Runs the maintenance scheduler in the foreground.

Jobs:
  trade_purge   - permanently removes soft-deleted trades past retention (3 AM)
  usage_report  - logs per-user trade counts (midnight)

Example:
  go run ./cmd/journal scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TraderScope Journal Scheduler ===")

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

	log.Info("Connected to database")

	repo := journal.NewRepository(db.Pool)

	// 4. Register jobs
	sched := scheduler.New(log)

	if err := sched.AddJob(jobs.NewPurgeJob(repo, cfg.Journal.RetentionDays, log)); err != nil {
		return fmt.Errorf("register purge job: %w", err)
	}
	if err := sched.AddJob(jobs.NewUsageReportJob(repo, log)); err != nil {
		return fmt.Errorf("register usage report job: %w", err)
	}

	// 5. Start and wait for interrupt
	sched.Start()

	fmt.Println("\n✅ Scheduler running")
	for _, name := range sched.Jobs() {
		fmt.Printf("   • %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
