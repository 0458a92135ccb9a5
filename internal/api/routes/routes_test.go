package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFor(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		params map[string]any
		want   string
	}{
		{"static route", Customers, nil, "/admin/customers"},
		{"path parameter", CustomerUpdateView, map[string]any{"customer_id": int64(42)}, "/admin/customer/update/42"},
		{
			"query parameters",
			Customers,
			map[string]any{"customer_page": 2, "delete_error_message": "The customer you want to delete does not exist"},
			"/admin/customers?customer_page=2&delete_error_message=The+customer+you+want+to+delete+does+not+exist",
		},
		{"path and query", CustomerUpdate, map[string]any{"customer_id": 7, "tab": "addresses"}, "/admin/customer/update/7?tab=addresses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := URLFor(tt.route, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLForErrors(t *testing.T) {
	_, err := URLFor("admin.unknown", nil)
	assert.Error(t, err)

	_, err = URLFor(CustomerUpdateView, nil)
	assert.ErrorContains(t, err, "customer_id")
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "/admin/address/delete", Pattern(AddressDelete))
	assert.Panics(t, func() { Pattern("admin.unknown") })
}
