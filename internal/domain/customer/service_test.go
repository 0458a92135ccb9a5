package customer

import (
	"backoffice/internal/event"
	"backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func strPtr(s string) *string { return &s }

func newTestService(customers *MockCustomerRepository, addresses *MockAddressRepository, pub *MockPublisher) *AccountService {
	s := NewAccountService(customers, addresses, pub, logger)
	s.hashCost = bcrypt.MinCost
	return s
}

func TestAccountServiceRegister(t *testing.T) {
	d := event.NewDispatcher(logger)
	s := newTestService(new(MockCustomerRepository), new(MockAddressRepository), new(MockPublisher))

	s.Register(d)

	assert.True(t, d.HasListeners(event.CustomerUpdateAccount))
	assert.True(t, d.HasListeners(event.CustomerDeleteAccount))
	assert.True(t, d.HasListeners(event.AddressDelete))
}

func TestNewAccountServicePanicsWithoutRepositories(t *testing.T) {
	assert.Panics(t, func() { NewAccountService(nil, new(MockAddressRepository), nil, logger) })
	assert.Panics(t, func() { NewAccountService(new(MockCustomerRepository), nil, nil, logger) })
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("applies submitted fields and keeps omitted ones", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		sponsor := "old-sponsor"
		company := "Old Co"
		cust := &Customer{
			ID:           42,
			Email:        "old@example.com",
			PasswordHash: "old-hash",
			LocaleID:     1,
			Reseller:     true,
			Sponsor:      &sponsor,
			Discount:     decimal.NewFromInt(5),
			DefaultAddress: &Address{
				ID:        7,
				Company:   &company,
				IsDefault: true,
			},
		}
		discount := decimal.RequireFromString("10")
		ev := &CustomerUpdateEvent{
			TitleID:   1,
			FirstName: "Jane",
			LastName:  "Doe",
			Address1:  "1 Main St",
			Zipcode:   "75001",
			City:      "Paris",
			CountryID: 64,
			Email:     strPtr("jane@example.com"),
			Password:  strPtr(""),
			Discount:  &discount,
			Customer:  cust,
		}

		customers.On("Update", ctx, cust).Return(nil).Once()
		pub.On("Publish", ctx, event.RoutingKeyCustomerUpdated, mock.MatchedBy(func(m BrokerMessage[CustomerEventPayload]) bool {
			return m.Payload.CustomerID == 42 && m.Payload.Email == "jane@example.com"
		})).Return(nil).Once()

		require.NoError(t, s.UpdateAccount(ctx, event.CustomerUpdateAccount, ev))

		assert.Equal(t, "Jane", cust.FirstName)
		assert.Equal(t, "jane@example.com", cust.Email)
		assert.Equal(t, "old-hash", cust.PasswordHash)
		assert.Equal(t, int64(1), cust.LocaleID)
		assert.True(t, cust.Reseller)
		assert.Equal(t, "old-sponsor", *cust.Sponsor)
		assert.True(t, discount.Equal(cust.Discount))
		assert.Equal(t, int64(7), cust.DefaultAddress.ID)
		assert.Equal(t, "Paris", cust.DefaultAddress.City)
		assert.Equal(t, "Old Co", *cust.DefaultAddress.Company)
		assert.Same(t, cust, ev.Customer)
		customers.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("hashes a new password and creates a default address", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		cust := &Customer{ID: 9}
		ev := &CustomerUpdateEvent{
			FirstName: "John",
			LastName:  "Smith",
			City:      "Lyon",
			LocaleID:  3,
			Password:  strPtr("s3cret-pass"),
			Company:   strPtr("Smith SARL"),
			Customer:  cust,
		}

		customers.On("Update", ctx, cust).Return(nil).Once()
		pub.On("Publish", ctx, event.RoutingKeyCustomerUpdated, mock.Anything).Return(nil).Once()

		require.NoError(t, s.UpdateAccount(ctx, event.CustomerUpdateAccount, ev))

		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte("s3cret-pass")))
		assert.Equal(t, int64(3), cust.LocaleID)
		require.NotNil(t, cust.DefaultAddress)
		assert.True(t, cust.DefaultAddress.IsDefault)
		assert.Equal(t, int64(9), cust.DefaultAddress.CustomerID)
		assert.Equal(t, "Lyon", cust.DefaultAddress.City)
		assert.Equal(t, "Smith SARL", *cust.Company())
	})

	t.Run("repository failure is returned and nothing is published", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		cust := &Customer{ID: 42}
		dbErr := apperrors.WrapDatabaseError(errors.New("duplicate key"), "failed to update customer")
		customers.On("Update", ctx, cust).Return(dbErr).Once()

		err := s.UpdateAccount(ctx, event.CustomerUpdateAccount, &CustomerUpdateEvent{Customer: cust})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the update", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		cust := &Customer{ID: 42}
		customers.On("Update", ctx, cust).Return(nil).Once()
		pub.On("Publish", ctx, event.RoutingKeyCustomerUpdated, mock.Anything).Return(errors.New("broker down")).Once()

		assert.NoError(t, s.UpdateAccount(ctx, event.CustomerUpdateAccount, &CustomerUpdateEvent{Customer: cust}))
	})

	t.Run("rejects unexpected payloads", func(t *testing.T) {
		s := newTestService(new(MockCustomerRepository), new(MockAddressRepository), new(MockPublisher))

		err := s.UpdateAccount(ctx, event.CustomerUpdateAccount, NewCustomerEvent(&Customer{ID: 1}))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		err = s.UpdateAccount(ctx, event.CustomerUpdateAccount, &CustomerUpdateEvent{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and publishes", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		customers.On("Delete", ctx, int64(42)).Return(nil).Once()
		pub.On("Publish", ctx, event.RoutingKeyCustomerDeleted, mock.MatchedBy(func(m BrokerMessage[CustomerEventPayload]) bool {
			return m.Payload.CustomerID == 42
		})).Return(nil).Once()

		require.NoError(t, s.DeleteAccount(ctx, event.CustomerDeleteAccount, NewCustomerEvent(&Customer{ID: 42})))
		customers.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("conflict is returned", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		pub := new(MockPublisher)
		s := newTestService(customers, new(MockAddressRepository), pub)

		customers.On("Delete", ctx, int64(42)).Return(apperrors.ErrConflict).Once()

		err := s.DeleteAccount(ctx, event.CustomerDeleteAccount, NewCustomerEvent(&Customer{ID: 42}))
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a nil customer", func(t *testing.T) {
		s := newTestService(new(MockCustomerRepository), new(MockAddressRepository), new(MockPublisher))
		err := s.DeleteAccount(ctx, event.CustomerDeleteAccount, NewCustomerEvent(nil))
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestDeleteAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and publishes", func(t *testing.T) {
		addresses := new(MockAddressRepository)
		pub := new(MockPublisher)
		s := newTestService(new(MockCustomerRepository), addresses, pub)

		addresses.On("Delete", ctx, int64(5)).Return(nil).Once()
		pub.On("Publish", ctx, event.RoutingKeyAddressDeleted, mock.MatchedBy(func(m BrokerMessage[AddressEventPayload]) bool {
			return m.Payload == AddressEventPayload{AddressID: 5, CustomerID: 42}
		})).Return(nil).Once()

		require.NoError(t, s.DeleteAddress(ctx, event.AddressDelete, NewAddressEvent(&Address{ID: 5, CustomerID: 42})))
		addresses.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("not found is returned", func(t *testing.T) {
		addresses := new(MockAddressRepository)
		s := newTestService(new(MockCustomerRepository), addresses, new(MockPublisher))

		addresses.On("Delete", ctx, int64(5)).Return(apperrors.NewNotFoundError("address", 5, "")).Once()

		err := s.DeleteAddress(ctx, event.AddressDelete, NewAddressEvent(&Address{ID: 5}))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUpdateAccountThroughDispatcher(t *testing.T) {
	ctx := context.Background()
	customers := new(MockCustomerRepository)
	pub := new(MockPublisher)
	s := newTestService(customers, new(MockAddressRepository), pub)
	d := event.NewDispatcher(logger)
	s.Register(d)

	cust := &Customer{ID: 42}
	ev := &CustomerUpdateEvent{FirstName: "Jane", Customer: cust}
	customers.On("Update", ctx, cust).Return(nil).Once()
	pub.On("Publish", ctx, event.RoutingKeyCustomerUpdated, mock.Anything).Return(nil).Once()

	require.NoError(t, d.Dispatch(ctx, event.CustomerUpdateAccount, ev))
	assert.Equal(t, "Jane", ev.Customer.FirstName)
}
