package handler

import (
	"backoffice/internal/admin"
	"backoffice/internal/api/handler/dto"
	"backoffice/internal/api/routes"
	"backoffice/internal/domain/customer"
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

type CustomerReader interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
	FindPage(ctx context.Context, limit, offset int) ([]*customer.Customer, int, error)
}

type AddressReader interface {
	FindByCustomerID(ctx context.Context, customerID int64) ([]*customer.Address, error)
}

// ViewRenderer turns workflow results into HTTP responses. Views are written
// as JSON with the data each view needs, redirects as 302 Found.
type ViewRenderer struct {
	customers CustomerReader
	addresses AddressReader
	logger    *slog.Logger
}

func NewViewRenderer(customers CustomerReader, addresses AddressReader, logger *slog.Logger) *ViewRenderer {
	if customers == nil || addresses == nil {
		panic("renderer readers cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ViewRenderer{
		customers: customers,
		addresses: addresses,
		logger:    logger.With("component", "ViewRenderer"),
	}
}

func (v *ViewRenderer) Write(w http.ResponseWriter, r *http.Request, res *admin.Result) {
	ctx := r.Context()
	if res == nil {
		v.logger.ErrorContext(ctx, "Workflow returned no result")
		respondError(w, fmt.Errorf("empty workflow result"))
		return
	}

	if res.IsRedirect() {
		location := res.URL
		if location == "" {
			var err error
			location, err = routes.URLFor(res.Route, res.Params)
			if err != nil {
				v.logger.ErrorContext(ctx, "Failed to resolve redirect route", slog.String("route", res.Route), slog.Any("error", err))
				respondError(w, err)
				return
			}
		}
		v.logger.DebugContext(ctx, "Redirecting", slog.String("location", location))
		http.Redirect(w, r, location, http.StatusFound)
		return
	}

	data, err := v.load(r, res)
	if err != nil {
		if res.Error == "" {
			v.logger.ErrorContext(ctx, "Failed to load view data", slog.String("view", res.View), slog.Any("error", err))
			respondError(w, err)
			return
		}
		v.logger.WarnContext(ctx, "View data unavailable, rendering error only", slog.String("view", res.View), slog.Any("error", err))
		data = nil
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
		if res.Error != "" {
			status = http.StatusUnprocessableEntity
		}
	}

	respondJSON(w, status, dto.ViewResponse{
		View:        res.View,
		Params:      res.Params,
		Data:        data,
		Error:       res.Error,
		FieldErrors: res.FieldErrors,
	})
}

func (v *ViewRenderer) load(r *http.Request, res *admin.Result) (any, error) {
	ctx := r.Context()
	switch res.View {
	case admin.ViewCustomers:
		perPage, _ := res.Params["display_customer"].(int)
		if perPage <= 0 {
			perPage = 20
		}
		page, offset := pageOffset(parsePage(r.URL.Query().Get("customer_page")), perPage)

		customers, total, err := v.customers.FindPage(ctx, perPage, offset)
		if err != nil {
			return nil, err
		}
		return dto.CustomerListData{
			Customers:          dto.NewCustomerResponses(customers),
			Page:               page,
			PerPage:            perPage,
			Total:              total,
			DeleteErrorMessage: r.URL.Query().Get("delete_error_message"),
		}, nil

	case admin.ViewCustomerEdit:
		id, ok := res.Params["customer_id"].(int64)
		if !ok {
			return nil, fmt.Errorf("customer-edit view needs a customer_id")
		}
		cust, err := v.customers.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		addresses, err := v.addresses.FindByCustomerID(ctx, id)
		if err != nil {
			return nil, err
		}
		return dto.CustomerEditData{
			Customer:  dto.NewCustomerResponse(cust),
			Addresses: dto.NewAddressResponses(addresses),
		}, nil

	default:
		return nil, nil
	}
}
