package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"backoffice/internal/domain/customer"
	"backoffice/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type AddressRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.AddressRepository = (*AddressRepository)(nil)

func NewAddressRepository(db DBPool, logger *slog.Logger) *AddressRepository {
	if db == nil {
		panic("DBPool cannot be nil for AddressRepository")
	}
	return &AddressRepository{db: db, logger: logger.With("component", "AddressRepository")}
}

func (r *AddressRepository) FindByID(ctx context.Context, addressID int64) (*customer.Address, error) {
	logCtx := r.logger.With(slog.Int64("addressID", addressID))

	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var addr customer.Address
	if err := scanAddress(r.db.QueryRow(ctx, query, addressID), &addr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logCtx.WarnContext(ctx, "Address not found")
			return nil, apperrors.NewNotFoundError("address", addressID, "")
		}
		logCtx.ErrorContext(ctx, "Failed to query/scan address by ID", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &addr, nil
}

func (r *AddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*customer.Address, error) {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))

	query := `SELECT ` + addressColumns + ` FROM addresses WHERE customer_id = $1 ORDER BY is_default DESC, id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query addresses", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	addresses := make([]*customer.Address, 0)
	for rows.Next() {
		var addr customer.Address
		if err := scanAddress(rows, &addr); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan address row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		addresses = append(addresses, &addr)
	}
	if err := rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating address rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}
	return addresses, nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID int64) error {
	logCtx := r.logger.With(slog.Int64("addressID", addressID))
	logCtx.InfoContext(ctx, "Attempting to delete address")

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to execute delete address", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}
	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Delete affected zero rows, address likely not found")
		return apperrors.NewNotFoundError("address", addressID, "")
	}

	logCtx.InfoContext(ctx, "Address deleted successfully")
	return nil
}
