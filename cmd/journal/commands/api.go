package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderscope/journal/backend/internal/api"
	"github.com/traderscope/journal/backend/internal/api/handlers"
	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/config"
	"github.com/traderscope/journal/backend/pkg/database"
	"github.com/traderscope/journal/backend/pkg/logger"
	"github.com/traderscope/journal/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the journal REST API server.

Endpoints:
  GET  /health                        - Health check
  CRUD /api/trades                    - Trade journal entries
  CRUD /api/notes, /api/events        - Notes and calendar events
  GET  /api/analytics/*               - Performance analytics

Example:
  go run ./cmd/journal api
  go run ./cmd/journal api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "override API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TraderScope Journal API ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (optional, cache degrades to no-op when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "journal")

	// 5. Create repository
	repo := journal.NewRepository(db.Pool)

	// 6. Create handlers
	tradeHandler := handlers.NewTradeHandler(repo, cache, log)
	analyticsHandler := handlers.NewAnalyticsHandler(repo, cache, cfg, log)
	noteHandler := handlers.NewNoteHandler(repo, log)

	// 7. Create router
	router := api.NewRouter(cfg, tradeHandler, analyticsHandler, noteHandler, log)

	// 8. Create server
	server := api.New(cfg, log, router)

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
