package handler

import (
	"backoffice/internal/admin"
	"backoffice/internal/domain/customer"
	"context"
	"io"
	"log/slog"
	"net/url"

	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCustomerWorkflow struct {
	mock.Mock
}

func (m *MockCustomerWorkflow) ListCustomers(ctx context.Context) *admin.Result {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*admin.Result)
	return res
}

func (m *MockCustomerWorkflow) ViewCustomer(ctx context.Context, customerID int64) *admin.Result {
	args := m.Called(ctx, customerID)
	res, _ := args.Get(0).(*admin.Result)
	return res
}

func (m *MockCustomerWorkflow) UpdateCustomer(ctx context.Context, customerID int64, submitted url.Values) *admin.Result {
	args := m.Called(ctx, customerID, submitted)
	res, _ := args.Get(0).(*admin.Result)
	return res
}

func (m *MockCustomerWorkflow) DeleteCustomer(ctx context.Context, customerID int64, page int) *admin.Result {
	args := m.Called(ctx, customerID, page)
	res, _ := args.Get(0).(*admin.Result)
	return res
}

func (m *MockCustomerWorkflow) DeleteAddress(ctx context.Context, addressID int64) *admin.Result {
	args := m.Called(ctx, addressID)
	res, _ := args.Get(0).(*admin.Result)
	return res
}

type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerReader) FindPage(ctx context.Context, limit, offset int) ([]*customer.Customer, int, error) {
	args := m.Called(ctx, limit, offset)
	if c, ok := args.Get(0).([]*customer.Customer); ok {
		return c, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type MockAddressReader struct {
	mock.Mock
}

func (m *MockAddressReader) FindByCustomerID(ctx context.Context, customerID int64) ([]*customer.Address, error) {
	args := m.Called(ctx, customerID)
	if a, ok := args.Get(0).([]*customer.Address); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
