package customer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindPage(ctx context.Context, limit, offset int) ([]*Customer, int, error) {
	ret := _m.Called(ctx, limit, offset)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, cust)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

type MockAddressRepository struct {
	mock.Mock
}

func (_m *MockAddressRepository) FindByID(ctx context.Context, addressID int64) (*Address, error) {
	ret := _m.Called(ctx, addressID)

	var r0 *Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Address)
	}

	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Address)
	}

	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) Delete(ctx context.Context, addressID int64) error {
	ret := _m.Called(ctx, addressID)
	return ret.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (_m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	ret := _m.Called(ctx, routingKey, payload)
	return ret.Error(0)
}
