package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"backoffice/internal/domain/customer"
	"backoffice/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, ref, title_id, firstname, lastname, email, password_hash, locale_id,
        reseller, sponsor, discount, created_at, updated_at`

const addressColumns = `id, customer_id, label, title_id, firstname, lastname, company,
        address1, address2, address3, zipcode, city, country_id, phone, cellphone, is_default,
        created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func scanCustomer(row pgx.Row, cust *customer.Customer) error {
	return row.Scan(
		&cust.ID,
		&cust.Ref,
		&cust.TitleID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Email,
		&cust.PasswordHash,
		&cust.LocaleID,
		&cust.Reseller,
		&cust.Sponsor,
		&cust.Discount,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
}

func scanAddress(row pgx.Row, addr *customer.Address) error {
	return row.Scan(
		&addr.ID,
		&addr.CustomerID,
		&addr.Label,
		&addr.TitleID,
		&addr.FirstName,
		&addr.LastName,
		&addr.Company,
		&addr.Address1,
		&addr.Address2,
		&addr.Address3,
		&addr.Zipcode,
		&addr.City,
		&addr.CountryID,
		&addr.Phone,
		&addr.Cellphone,
		&addr.IsDefault,
		&addr.CreatedAt,
		&addr.UpdatedAt,
	)
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Attempting to find customer by ID")

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var cust customer.Customer
	if err := scanCustomer(r.db.QueryRow(ctx, query, customerID), &cust); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logCtx.WarnContext(ctx, "Customer not found")
			return nil, apperrors.NewNotFoundError("customer", customerID, "")
		}
		logCtx.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	addrQuery := `SELECT ` + addressColumns + ` FROM addresses WHERE customer_id = $1 AND is_default = TRUE`

	var addr customer.Address
	err := scanAddress(r.db.QueryRow(ctx, addrQuery, customerID), &addr)
	switch {
	case err == nil:
		cust.DefaultAddress = &addr
	case errors.Is(err, pgx.ErrNoRows):
		logCtx.WarnContext(ctx, "Customer has no default address")
	default:
		logCtx.ErrorContext(ctx, "Failed to query/scan default address", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get default address: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Customer found successfully")
	return &cust, nil
}

func (r *CustomerRepository) FindPage(ctx context.Context, limit, offset int) ([]*customer.Customer, int, error) {
	if limit <= 0 || offset < 0 {
		return nil, 0, fmt.Errorf("%w: invalid page window limit=%d offset=%d", apperrors.ErrInvalidArgument, limit, offset)
	}
	logCtx := r.logger.With(slog.Int("limit", limit), slog.Int("offset", offset))

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&total); err != nil {
		logCtx.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0, limit)
	for rows.Next() {
		var cust customer.Customer
		if err := scanCustomer(rows, &cust); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, 0, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}
	if err := rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)), slog.Int("total", total))
	return customers, total, nil
}

// Update writes the customer row and its default address in one transaction.
// A customer without default address gets one inserted.
func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}

	if err := r.updateCustomerRow(ctx, tx, cust); err != nil {
		rollbackTx(ctx, tx, logCtx)
		return err
	}
	if cust.DefaultAddress != nil {
		if err := r.saveDefaultAddress(ctx, tx, cust); err != nil {
			rollbackTx(ctx, tx, logCtx)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) updateCustomerRow(ctx context.Context, tx pgx.Tx, cust *customer.Customer) error {
	query := `
        UPDATE customers
        SET title_id = $1,
            firstname = $2,
            lastname = $3,
            email = $4,
            password_hash = $5,
            locale_id = $6,
            reseller = $7,
            sponsor = $8,
            discount = $9,
            updated_at = NOW()
        WHERE id = $10
        RETURNING updated_at`

	err := tx.QueryRow(ctx, query,
		cust.TitleID,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.PasswordHash,
		cust.LocaleID,
		cust.Reseller,
		cust.Sponsor,
		cust.Discount,
		cust.ID,
	).Scan(&cust.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found", slog.Int64("customerID", cust.ID))
			return apperrors.NewNotFoundError("customer", cust.ID, "")
		}
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *CustomerRepository) saveDefaultAddress(ctx context.Context, tx pgx.Tx, cust *customer.Customer) error {
	addr := cust.DefaultAddress
	addr.CustomerID = cust.ID
	addr.IsDefault = true

	if addr.ID == 0 {
		query := `
        INSERT INTO addresses (customer_id, label, title_id, firstname, lastname, company,
            address1, address2, address3, zipcode, city, country_id, phone, cellphone, is_default,
            created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE, NOW(), NOW())
        RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			addr.CustomerID, addr.Label, addr.TitleID, addr.FirstName, addr.LastName, addr.Company,
			addr.Address1, addr.Address2, addr.Address3, addr.Zipcode, addr.City, addr.CountryID,
			addr.Phone, addr.Cellphone,
		).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt)
		if err != nil {
			return translateDBError(err, r.logger)
		}
		r.logger.InfoContext(ctx, "Default address created", slog.Int64("customerID", cust.ID), slog.Int64("addressID", addr.ID))
		return nil
	}

	query := `
        UPDATE addresses
        SET title_id = $1,
            firstname = $2,
            lastname = $3,
            company = $4,
            address1 = $5,
            address2 = $6,
            address3 = $7,
            zipcode = $8,
            city = $9,
            country_id = $10,
            phone = $11,
            cellphone = $12,
            updated_at = NOW()
        WHERE id = $13 AND customer_id = $14`

	cmdTag, err := tx.Exec(ctx, query,
		addr.TitleID, addr.FirstName, addr.LastName, addr.Company,
		addr.Address1, addr.Address2, addr.Address3, addr.Zipcode, addr.City, addr.CountryID,
		addr.Phone, addr.Cellphone,
		addr.ID, addr.CustomerID,
	)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Default address update affected zero rows", slog.Int64("addressID", addr.ID))
		return apperrors.NewNotFoundError("address", addr.ID, "")
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	logCtx := r.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return translateDBError(err, logCtx)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return apperrors.NewNotFoundError("customer", customerID, "")
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}
