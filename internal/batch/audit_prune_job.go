package batch

import (
	"backoffice/internal/infrastructure/monitoring"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type AuditPruner interface {
	Prune(ctx context.Context, retentionDays int) (int64, error)
}

// AuditPruneJob enforces the audit log retention window.
type AuditPruneJob struct {
	pruner        AuditPruner
	retentionDays int
	logger        *slog.Logger
}

func NewAuditPruneJob(pruner AuditPruner, retentionDays int, logger *slog.Logger) *AuditPruneJob {
	if pruner == nil || logger == nil {
		panic("AuditPruneJob dependencies cannot be nil")
	}
	return &AuditPruneJob{
		pruner:        pruner,
		retentionDays: retentionDays,
		logger:        logger.With("job", "AuditPrune"),
	}
}

func (j *AuditPruneJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting audit log retention job.", slog.Int("retention_days", j.retentionDays))

	removed, err := j.pruner.Prune(ctx, j.retentionDays)
	if err != nil {
		j.logger.ErrorContext(ctx, "Audit log retention job failed.", slog.Any("error", err))
		return fmt.Errorf("cannot prune audit log: %w", err)
	}
	monitoring.RecordAuditPruned(removed)

	j.logger.InfoContext(ctx, "Audit log retention job finished.",
		slog.Int64("entries_removed", removed),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
