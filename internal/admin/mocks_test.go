package admin

import (
	"backoffice/internal/domain/customer"
	"backoffice/internal/event"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAuthorizer struct {
	mock.Mock
}

func (_m *MockAuthorizer) Authorize(ctx context.Context, capability string) *Result {
	ret := _m.Called(ctx, capability)

	var r0 *Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Result)
	}
	return r0
}

type MockLocaleProvider struct {
	mock.Mock
}

func (_m *MockLocaleProvider) CurrentLocaleID(ctx context.Context) int64 {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64)
}

type MockCustomerFinder struct {
	mock.Mock
}

func (_m *MockCustomerFinder) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockAddressFinder struct {
	mock.Mock
}

func (_m *MockAddressFinder) FindByID(ctx context.Context, addressID int64) (*customer.Address, error) {
	ret := _m.Called(ctx, addressID)

	var r0 *customer.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Address)
	}
	return r0, ret.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (_m *MockDispatcher) Dispatch(ctx context.Context, name string, e event.Event) error {
	ret := _m.Called(ctx, name, e)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, event.Event) error); ok {
		r0 = rf(ctx, name, e)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

type MockAuditLogger struct {
	mock.Mock
}

func (_m *MockAuditLogger) Append(ctx context.Context, message string) error {
	ret := _m.Called(ctx, message)
	return ret.Error(0)
}
