package customer

import (
	"context"
)

type CustomerRepository interface {
	// FindByID returns apperrors.ErrNotFound when no customer has the id.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindPage(ctx context.Context, limit, offset int) ([]*Customer, int, error)

	// Update persists the customer and its default address atomically.
	Update(ctx context.Context, cust *Customer) error

	Delete(ctx context.Context, customerID int64) error
}

type AddressRepository interface {
	FindByID(ctx context.Context, addressID int64) (*Address, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error)

	Delete(ctx context.Context, addressID int64) error
}
