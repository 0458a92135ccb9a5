package admin

import (
	"backoffice/internal/domain/customer"
	"backoffice/internal/event"
	"backoffice/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

const (
	CapabilityView   = "customer.view"
	CapabilityUpdate = "customer.update"
	CapabilityDelete = "customer.delete"
)

const (
	ViewCustomers    = "customers"
	ViewCustomerEdit = "customer-edit"

	RouteCustomers          = "admin.customers"
	RouteCustomerUpdateView = "admin.customer.update.view"
)

const (
	saveModeClose      = "close"
	defaultPageSize    = 20
	checkInputPrefix   = "Please check your input: "
	errorOccuredPrefix = "Sorry, an error occurred: "
	deleteNotFoundMsg  = "The customer you want to delete does not exist"
)

// Authorizer returns nil when the caller holds capability, otherwise the
// result to send back instead of running the operation.
type Authorizer interface {
	Authorize(ctx context.Context, capability string) *Result
}

type LocaleProvider interface {
	CurrentLocaleID(ctx context.Context) int64
}

type CustomerFinder interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
}

type AddressFinder interface {
	FindByID(ctx context.Context, addressID int64) (*customer.Address, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, name string, e event.Event) error
}

type AuditLogger interface {
	Append(ctx context.Context, message string) error
}

type WorkflowDeps struct {
	Authorizer Authorizer
	Locales    LocaleProvider
	Customers  CustomerFinder
	Addresses  AddressFinder
	Dispatcher Dispatcher
	Audit      AuditLogger
}

// CustomerWorkflow runs the customer back-office operations. Every operation
// returns a Result and never an error: failures are logged and turned into
// messages on the result.
type CustomerWorkflow struct {
	auth      Authorizer
	locales   LocaleProvider
	customers CustomerFinder
	addresses AddressFinder
	events    Dispatcher
	audit     AuditLogger
	pageSize  int
	logger    *slog.Logger
}

func NewCustomerWorkflow(deps WorkflowDeps, pageSize int, logger *slog.Logger) *CustomerWorkflow {
	if deps.Authorizer == nil || deps.Locales == nil || deps.Customers == nil ||
		deps.Addresses == nil || deps.Dispatcher == nil || deps.Audit == nil {
		panic("customer workflow dependencies cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &CustomerWorkflow{
		auth:      deps.Authorizer,
		locales:   deps.Locales,
		customers: deps.Customers,
		addresses: deps.Addresses,
		events:    deps.Dispatcher,
		audit:     deps.Audit,
		pageSize:  pageSize,
		logger:    logger.With("component", "CustomerWorkflow"),
	}
}

func (w *CustomerWorkflow) ListCustomers(ctx context.Context) *Result {
	if denied := w.auth.Authorize(ctx, CapabilityView); denied != nil {
		return denied
	}
	return Render(ViewCustomers, map[string]any{"display_customer": w.pageSize})
}

func (w *CustomerWorkflow) ViewCustomer(ctx context.Context, customerID int64) *Result {
	if denied := w.auth.Authorize(ctx, CapabilityView); denied != nil {
		return denied
	}
	return Render(ViewCustomerEdit, map[string]any{"customer_id": customerID})
}

func (w *CustomerWorkflow) UpdateCustomer(ctx context.Context, customerID int64, submitted url.Values) *Result {
	if denied := w.auth.Authorize(ctx, CapabilityUpdate); denied != nil {
		return denied
	}
	logCtx := w.logger.With(slog.Int64("customerID", customerID))

	updated, form, err := w.applyUpdate(ctx, customerID, submitted)
	if err != nil {
		res := Render(ViewCustomerEdit, map[string]any{"customer_id": customerID})
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			res.Error = checkInputPrefix + err.Error()
			res.FieldErrors = verr.FieldErrors()
		} else {
			res.Error = errorOccuredPrefix + err.Error()
		}
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return res
	}

	w.record(ctx, fmt.Sprintf("Customer with Ref %s (ID %d) modified", updated.Ref, updated.ID))

	if submitted.Get("save_mode") == saveModeClose {
		return Redirect(RouteCustomers, nil)
	}
	if isLocalPath(form.SuccessURL) {
		return RedirectURL(form.SuccessURL)
	}
	return Redirect(RouteCustomerUpdateView, map[string]any{"customer_id": updated.ID})
}

func (w *CustomerWorkflow) applyUpdate(ctx context.Context, customerID int64, submitted url.Values) (*customer.Customer, *CustomerModification, error) {
	cust, err := w.findCustomer(ctx, customerID, fmt.Sprintf("%d customer id does not exist", customerID))
	if err != nil {
		return nil, nil, err
	}

	form, err := BindCustomerModification(submitted)
	if err != nil {
		return nil, nil, err
	}

	ev := &customer.CustomerUpdateEvent{
		TitleID:   form.Title,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Address1:  form.Address1,
		Address2:  form.Address2,
		Address3:  form.Address3,
		Phone:     form.Phone,
		Cellphone: form.Cellphone,
		Zipcode:   form.Zipcode,
		City:      form.City,
		CountryID: form.Country,
		LocaleID:  w.locales.CurrentLocaleID(ctx),
		Email:     form.Email,
		Password:  form.Password,
		Reseller:  form.Reseller,
		Sponsor:   form.Sponsor,
		Discount:  form.Discount,
		Company:   form.Company,
		Customer:  cust,
	}

	if err := w.events.Dispatch(ctx, event.CustomerUpdateAccount, ev); err != nil {
		return nil, nil, err
	}

	if ev.Customer != nil {
		cust = ev.Customer
	}
	return cust, form, nil
}

func (w *CustomerWorkflow) DeleteCustomer(ctx context.Context, customerID int64, page int) *Result {
	if denied := w.auth.Authorize(ctx, CapabilityDelete); denied != nil {
		return denied
	}
	if page <= 0 {
		page = 1
	}
	params := map[string]any{"customer_page": page}
	logCtx := w.logger.With(slog.Int64("customerID", customerID))

	cust, err := w.findCustomer(ctx, customerID, deleteNotFoundMsg)
	if err == nil {
		err = w.events.Dispatch(ctx, event.CustomerDeleteAccount, customer.NewCustomerEvent(cust))
	}
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		params["delete_error_message"] = err.Error()
		return Redirect(RouteCustomers, params)
	}

	w.record(ctx, fmt.Sprintf("Customer with Ref %s (ID %d) deleted", cust.Ref, cust.ID))
	return Redirect(RouteCustomers, params)
}

// DeleteAddress redirects to the owner's edit view. When the address cannot be
// found there is no owner to go back to, so it falls back to the customer list.
func (w *CustomerWorkflow) DeleteAddress(ctx context.Context, addressID int64) *Result {
	if denied := w.auth.Authorize(ctx, CapabilityUpdate); denied != nil {
		return denied
	}
	logCtx := w.logger.With(slog.Int64("addressID", addressID))

	addr, err := w.addresses.FindByID(ctx, addressID)
	if err == nil && addr == nil {
		err = apperrors.ErrNotFound
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.NewNotFoundError("address", addressID, fmt.Sprintf("%d address does not exist", addressID))
		}
		logCtx.ErrorContext(ctx, "Failed to delete address", slog.Any("error", err))
		return Redirect(RouteCustomers, nil)
	}

	if err := w.events.Dispatch(ctx, event.AddressDelete, customer.NewAddressEvent(addr)); err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete address", slog.Int64("customerID", addr.CustomerID), slog.Any("error", err))
	} else {
		w.record(ctx, fmt.Sprintf("address %d for customer %d removal", addr.ID, addr.CustomerID))
	}

	return Redirect(RouteCustomerUpdateView, map[string]any{"customer_id": addr.CustomerID})
}

func (w *CustomerWorkflow) findCustomer(ctx context.Context, customerID int64, notFoundMsg string) (*customer.Customer, error) {
	cust, err := w.customers.FindByID(ctx, customerID)
	if err == nil && cust == nil {
		err = apperrors.ErrNotFound
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("customer", customerID, notFoundMsg)
	}
	return cust, err
}

func (w *CustomerWorkflow) record(ctx context.Context, message string) {
	if err := w.audit.Append(ctx, message); err != nil {
		w.logger.WarnContext(ctx, "Failed to write audit log entry", slog.String("message", message), slog.Any("error", err))
	}
}

func isLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	u, err := url.Parse(target)
	return err == nil && u.Scheme == "" && u.Host == ""
}
