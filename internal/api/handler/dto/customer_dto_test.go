package dto

import (
	"backoffice/internal/domain/customer"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerResponse(t *testing.T) {
	assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))

	company := "ACME"
	cust := &customer.Customer{
		ID:        42,
		Ref:       "CUS000042",
		FirstName: "Jane",
		Discount:  decimal.RequireFromString("7.5"),
		DefaultAddress: &customer.Address{
			ID:        7,
			Company:   &company,
			IsDefault: true,
		},
	}

	resp := NewCustomerResponse(cust)
	assert.Equal(t, "42", resp.CustomerID)
	assert.Equal(t, "7.50", resp.Discount)
	require.NotNil(t, resp.Company)
	assert.Equal(t, "ACME", *resp.Company)
	require.NotNil(t, resp.Default)
	assert.Equal(t, "7", resp.Default.AddressID)
}

func TestNewResponsesKeepOrder(t *testing.T) {
	customers := NewCustomerResponses([]*customer.Customer{{ID: 2}, {ID: 1}})
	require.Len(t, customers, 2)
	assert.Equal(t, "2", customers[0].CustomerID)

	addresses := NewAddressResponses(nil)
	assert.NotNil(t, addresses)
	assert.Empty(t, addresses)
}
