package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/traderscope/journal/backend/internal/journal"
	"github.com/traderscope/journal/backend/pkg/logger"
)

// PurgeJob permanently removes soft-deleted trades past the retention window
type PurgeJob struct {
	repo          *journal.Repository
	logger        *logger.Logger
	retentionDays int
}

// NewPurgeJob creates a new purge job
func NewPurgeJob(repo *journal.Repository, retentionDays int, log *logger.Logger) *PurgeJob {
	return &PurgeJob{
		repo:          repo,
		logger:        log,
		retentionDays: retentionDays,
	}
}

// Name returns the job name
func (j *PurgeJob) Name() string {
	return "trade_purge"
}

// Schedule returns the cron schedule (every day at 3 AM)
func (j *PurgeJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run executes the purge
func (j *PurgeJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	j.logger.WithField("cutoff", cutoff.Format("2006-01-02")).Debug("Starting trade purge")

	removed, err := j.repo.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge deleted trades: %w", err)
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Trade purge completed")
	}

	return nil
}

// UsageReportJob logs per-user trade counts for capacity tracking
type UsageReportJob struct {
	repo   *journal.Repository
	logger *logger.Logger
}

// NewUsageReportJob creates a new usage report job
func NewUsageReportJob(repo *journal.Repository, log *logger.Logger) *UsageReportJob {
	return &UsageReportJob{
		repo:   repo,
		logger: log,
	}
}

// Name returns the job name
func (j *UsageReportJob) Name() string {
	return "usage_report"
}

// Schedule returns the cron schedule (every day at midnight)
func (j *UsageReportJob) Schedule() string {
	return "0 0 0 * * *"
}

// Run executes the usage report
func (j *UsageReportJob) Run(ctx context.Context) error {
	counts, err := j.repo.CountTradesByUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to count trades: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	j.logger.WithFields(map[string]interface{}{
		"users":  len(counts),
		"trades": total,
	}).Info("Daily usage report")

	return nil
}
