package customer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID             int64
	Ref            string
	TitleID        int64
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	LocaleID       int64
	Reseller       bool
	Sponsor        *string
	Discount       decimal.Decimal
	DefaultAddress *Address
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Company is carried by the default address.
func (c *Customer) Company() *string {
	if c.DefaultAddress == nil {
		return nil
	}
	return c.DefaultAddress.Company
}

type Address struct {
	ID         int64
	CustomerID int64
	Label      string
	TitleID    int64
	FirstName  string
	LastName   string
	Company    *string
	Address1   string
	Address2   string
	Address3   string
	Zipcode    string
	City       string
	CountryID  int64
	Phone      string
	Cellphone  string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
