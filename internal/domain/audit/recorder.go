package audit

import (
	"backoffice/internal/auth"
	"backoffice/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Recorder writes audit lines for one resource on behalf of the admin found
// in the request context.
type Recorder struct {
	repo     Repository
	resource string
	logger   *slog.Logger
	now      func() time.Time
}

func NewRecorder(repo Repository, resource string, logger *slog.Logger) *Recorder {
	if repo == nil {
		panic("audit repository cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Recorder{
		repo:     repo,
		resource: resource,
		logger:   logger.With("component", "AuditRecorder", "resource", resource),
		now:      time.Now,
	}
}

func (r *Recorder) Append(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("%w: audit message cannot be empty", apperrors.ErrInvalidArgument)
	}
	entry := &Entry{
		Admin:     auth.Username(ctx),
		Resource:  r.resource,
		Message:   message,
		CreatedAt: r.now(),
	}
	r.logger.InfoContext(ctx, message, slog.String("admin", entry.Admin))

	if err := r.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}
	return nil
}

// Prune removes entries older than retentionDays.
func (r *Recorder) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("%w: retention must be at least one day, got %d", apperrors.ErrInvalidArgument, retentionDays)
	}
	cutoff := r.now().AddDate(0, 0, -retentionDays)
	n, err := r.repo.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit entries: %w", err)
	}
	r.logger.InfoContext(ctx, "Pruned audit entries", slog.Int64("removed", n), slog.Time("cutoff", cutoff))
	return n, nil
}
