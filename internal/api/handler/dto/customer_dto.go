package dto

import (
	"backoffice/internal/domain/customer"
	"backoffice/internal/pkg/apperrors"
	"strconv"
	"time"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ViewResponse is the JSON rendering of a workflow view.
type ViewResponse struct {
	View        string                 `json:"view"`
	Params      map[string]any         `json:"params,omitempty"`
	Data        any                    `json:"data,omitempty"`
	Error       string                 `json:"error,omitempty"`
	FieldErrors []apperrors.FieldError `json:"fieldErrors,omitempty"`
}

type AddressResponse struct {
	AddressID string    `json:"addressId"`
	Label     string    `json:"label"`
	TitleID   int64     `json:"titleId"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Company   *string   `json:"company,omitempty"`
	Address1  string    `json:"address1"`
	Address2  string    `json:"address2,omitempty"`
	Address3  string    `json:"address3,omitempty"`
	Zipcode   string    `json:"zipcode"`
	City      string    `json:"city"`
	CountryID int64     `json:"countryId"`
	Phone     string    `json:"phone,omitempty"`
	Cellphone string    `json:"cellphone,omitempty"`
	IsDefault bool      `json:"isDefault"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CustomerResponse struct {
	CustomerID string           `json:"customerId"`
	Ref        string           `json:"ref"`
	TitleID    int64            `json:"titleId"`
	FirstName  string           `json:"firstname"`
	LastName   string           `json:"lastname"`
	Email      string           `json:"email"`
	LocaleID   int64            `json:"localeId"`
	Reseller   bool             `json:"reseller"`
	Sponsor    *string          `json:"sponsor,omitempty"`
	Discount   string           `json:"discount"`
	Company    *string          `json:"company,omitempty"`
	Default    *AddressResponse `json:"defaultAddress,omitempty"`
	CreateDate time.Time        `json:"createDate"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type CustomerListData struct {
	Customers          []CustomerResponse `json:"customers"`
	Page               int                `json:"page"`
	PerPage            int                `json:"perPage"`
	Total              int                `json:"total"`
	DeleteErrorMessage string             `json:"deleteErrorMessage,omitempty"`
}

type CustomerEditData struct {
	Customer  CustomerResponse  `json:"customer"`
	Addresses []AddressResponse `json:"addresses"`
}

func NewAddressResponse(addr *customer.Address) AddressResponse {
	if addr == nil {
		return AddressResponse{}
	}
	return AddressResponse{
		AddressID: strconv.FormatInt(addr.ID, 10),
		Label:     addr.Label,
		TitleID:   addr.TitleID,
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Company:   addr.Company,
		Address1:  addr.Address1,
		Address2:  addr.Address2,
		Address3:  addr.Address3,
		Zipcode:   addr.Zipcode,
		City:      addr.City,
		CountryID: addr.CountryID,
		Phone:     addr.Phone,
		Cellphone: addr.Cellphone,
		IsDefault: addr.IsDefault,
		UpdatedAt: addr.UpdatedAt,
	}
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	resp := CustomerResponse{
		CustomerID: strconv.FormatInt(cust.ID, 10),
		Ref:        cust.Ref,
		TitleID:    cust.TitleID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Email:      cust.Email,
		LocaleID:   cust.LocaleID,
		Reseller:   cust.Reseller,
		Sponsor:    cust.Sponsor,
		Discount:   cust.Discount.StringFixed(2),
		Company:    cust.Company(),
		CreateDate: cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
	if cust.DefaultAddress != nil {
		addr := NewAddressResponse(cust.DefaultAddress)
		resp.Default = &addr
	}
	return resp
}

func NewCustomerResponses(customers []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

func NewAddressResponses(addresses []*customer.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, NewAddressResponse(a))
	}
	return out
}
