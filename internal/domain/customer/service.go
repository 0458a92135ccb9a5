package customer

import (
	"backoffice/internal/event"
	"backoffice/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultAddressLabel = "Main address"

// Subscriber is the part of the event bus the account service registers on.
type Subscriber interface {
	Subscribe(name string, l event.Listener)
}

// AccountService applies account events to the store and forwards them to the broker.
type AccountService struct {
	customers CustomerRepository
	addresses AddressRepository
	pub       event.Publisher
	logger    *slog.Logger
	hashCost  int
}

func NewAccountService(customers CustomerRepository, addresses AddressRepository, pub event.Publisher, logger *slog.Logger) *AccountService {
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if addresses == nil {
		panic("address repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NewNopPublisher(logger)
	}
	return &AccountService{
		customers: customers,
		addresses: addresses,
		pub:       pub,
		logger:    logger.With(slog.String("component", "AccountService")),
		hashCost:  bcrypt.DefaultCost,
	}
}

func (s *AccountService) Register(sub Subscriber) {
	sub.Subscribe(event.CustomerUpdateAccount, s.UpdateAccount)
	sub.Subscribe(event.CustomerDeleteAccount, s.DeleteAccount)
	sub.Subscribe(event.AddressDelete, s.DeleteAddress)
}

func (s *AccountService) UpdateAccount(ctx context.Context, name string, e event.Event) error {
	ev, ok := e.(*CustomerUpdateEvent)
	if !ok || ev.Customer == nil {
		return fmt.Errorf("%w: %s expects a customer update event with a customer, got %T", apperrors.ErrInvalidArgument, name, e)
	}
	cust := ev.Customer
	logCtx := s.logger.With(slog.Int64("customerID", cust.ID))
	logCtx.InfoContext(ctx, "Applying customer account update")

	if err := s.apply(cust, ev); err != nil {
		logCtx.ErrorContext(ctx, "Failed to apply account update", slog.Any("error", err))
		return err
	}

	if err := s.customers.Update(ctx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %d: %w", cust.ID, err)
	}
	ev.Customer = cust

	s.publish(ctx, event.RoutingKeyCustomerUpdated, BrokerMessage[CustomerEventPayload]{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	})
	logCtx.InfoContext(ctx, "Customer account updated")
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, name string, e event.Event) error {
	ev, ok := e.(*CustomerEvent)
	if !ok || ev.Customer == nil {
		return fmt.Errorf("%w: %s expects a customer event with a customer, got %T", apperrors.ErrInvalidArgument, name, e)
	}
	logCtx := s.logger.With(slog.Int64("customerID", ev.Customer.ID))
	logCtx.InfoContext(ctx, "Deleting customer account")

	if err := s.customers.Delete(ctx, ev.Customer.ID); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", ev.Customer.ID, err)
	}

	s.publish(ctx, event.RoutingKeyCustomerDeleted, BrokerMessage[CustomerEventPayload]{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(ev.Customer),
	})
	logCtx.InfoContext(ctx, "Customer account deleted")
	return nil
}

func (s *AccountService) DeleteAddress(ctx context.Context, name string, e event.Event) error {
	ev, ok := e.(*AddressEvent)
	if !ok || ev.Address == nil {
		return fmt.Errorf("%w: %s expects an address event with an address, got %T", apperrors.ErrInvalidArgument, name, e)
	}
	logCtx := s.logger.With(slog.Int64("addressID", ev.Address.ID), slog.Int64("customerID", ev.Address.CustomerID))
	logCtx.InfoContext(ctx, "Deleting address")

	if err := s.addresses.Delete(ctx, ev.Address.ID); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to delete address", slog.Any("error", err))
		return fmt.Errorf("failed to delete address %d: %w", ev.Address.ID, err)
	}

	s.publish(ctx, event.RoutingKeyAddressDeleted, BrokerMessage[AddressEventPayload]{
		Timestamp: time.Now(),
		Payload: AddressEventPayload{
			AddressID:  ev.Address.ID,
			CustomerID: ev.Address.CustomerID,
		},
	})
	logCtx.InfoContext(ctx, "Address deleted")
	return nil
}

func (s *AccountService) apply(cust *Customer, ev *CustomerUpdateEvent) error {
	cust.TitleID = ev.TitleID
	cust.FirstName = ev.FirstName
	cust.LastName = ev.LastName
	if ev.LocaleID > 0 {
		cust.LocaleID = ev.LocaleID
	}
	if ev.Email != nil {
		cust.Email = *ev.Email
	}
	if ev.Password != nil && *ev.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*ev.Password), s.hashCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		cust.PasswordHash = string(hash)
	}
	if ev.Reseller != nil {
		cust.Reseller = *ev.Reseller
	}
	if ev.Sponsor != nil {
		sponsor := *ev.Sponsor
		cust.Sponsor = &sponsor
	}
	if ev.Discount != nil {
		cust.Discount = *ev.Discount
	}

	addr := cust.DefaultAddress
	if addr == nil {
		addr = &Address{
			CustomerID: cust.ID,
			Label:      defaultAddressLabel,
			IsDefault:  true,
		}
		cust.DefaultAddress = addr
	}
	addr.TitleID = ev.TitleID
	addr.FirstName = ev.FirstName
	addr.LastName = ev.LastName
	addr.Address1 = ev.Address1
	addr.Address2 = ev.Address2
	addr.Address3 = ev.Address3
	addr.Zipcode = ev.Zipcode
	addr.City = ev.City
	addr.CountryID = ev.CountryID
	addr.Phone = ev.Phone
	addr.Cellphone = ev.Cellphone
	if ev.Company != nil {
		company := *ev.Company
		addr.Company = &company
	}
	return nil
}

func (s *AccountService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.pub.Publish(ctx, routingKey, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event to broker", slog.String("routingKey", routingKey), slog.Any("error", err))
	}
}
