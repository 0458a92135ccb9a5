package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"backoffice/internal/domain/audit"
	"backoffice/internal/pkg/apperrors"
)

type AuditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ audit.Repository = (*AuditRepository)(nil)

func NewAuditRepository(db DBPool, logger *slog.Logger) *AuditRepository {
	if db == nil {
		panic("DBPool cannot be nil for AuditRepository")
	}
	return &AuditRepository{db: db, logger: logger.With("component", "AuditRepository")}
}

func (r *AuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: audit entry cannot be nil", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO admin_logs (admin, resource, message, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := r.db.QueryRow(ctx, query, entry.Admin, entry.Resource, entry.Message, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert audit entry", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *AuditRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM admin_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to prune audit entries", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return cmdTag.RowsAffected(), nil
}
