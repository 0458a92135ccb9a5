package customer

import (
	"backoffice/internal/event"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerUpdateEvent carries validated account data. Pointer fields are nil
// when the value was not submitted and must leave the stored value untouched.
type CustomerUpdateEvent struct {
	event.Base

	TitleID   int64
	FirstName string
	LastName  string
	Address1  string
	Address2  string
	Address3  string
	Phone     string
	Cellphone string
	Zipcode   string
	City      string
	CountryID int64
	LocaleID  int64

	Email    *string
	Password *string
	Reseller *bool
	Sponsor  *string
	Discount *decimal.Decimal
	Company  *string

	Customer *Customer
}

type CustomerEvent struct {
	event.Base
	Customer *Customer
}

func NewCustomerEvent(c *Customer) *CustomerEvent {
	return &CustomerEvent{Customer: c}
}

type AddressEvent struct {
	event.Base
	Address *Address
}

func NewAddressEvent(a *Address) *AddressEvent {
	return &AddressEvent{Address: a}
}

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	Ref        string    `json:"ref"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	LocaleID   int64     `json:"localeId"`
	Reseller   bool      `json:"reseller"`
	Sponsor    *string   `json:"sponsor,omitempty"`
	Discount   string    `json:"discount"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AddressEventPayload struct {
	AddressID  int64 `json:"addressId"`
	CustomerID int64 `json:"customerId"`
}

type BrokerMessage[T any] struct {
	Timestamp time.Time `json:"timestamp"`
	Payload   T         `json:"payload"`
}

func NewCustomerEventPayload(c *Customer) CustomerEventPayload {
	if c == nil {
		return CustomerEventPayload{}
	}
	return CustomerEventPayload{
		CustomerID: c.ID,
		Ref:        c.Ref,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		LocaleID:   c.LocaleID,
		Reseller:   c.Reseller,
		Sponsor:    c.Sponsor,
		Discount:   c.Discount.StringFixed(2),
		UpdatedAt:  c.UpdatedAt,
	}
}
