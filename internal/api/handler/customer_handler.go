package handler

import (
	"backoffice/internal/admin"
	"backoffice/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// CustomerWorkflow is the admin workflow the customer handler drives.
type CustomerWorkflow interface {
	ListCustomers(ctx context.Context) *admin.Result
	ViewCustomer(ctx context.Context, customerID int64) *admin.Result
	UpdateCustomer(ctx context.Context, customerID int64, submitted url.Values) *admin.Result
	DeleteCustomer(ctx context.Context, customerID int64, page int) *admin.Result
	DeleteAddress(ctx context.Context, addressID int64) *admin.Result
}

type ResultWriter interface {
	Write(w http.ResponseWriter, r *http.Request, res *admin.Result)
}

type CustomerHandler struct {
	workflow CustomerWorkflow
	view     ResultWriter
	logger   *slog.Logger
}

func NewCustomerHandler(workflow CustomerWorkflow, view ResultWriter, l *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		workflow: workflow,
		view:     view,
		logger:   l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	return parseID(chi.URLParam(r, "customer_id"), "customer_id")
}

func (h *CustomerHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to parse form", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return false
	}
	return true
}

// ListCustomers renders the customer list.
//
// @Summary List customers
// @Description Renders the "customers" view with one page of customers. Use `customer_page` to select the page.
// @Tags Customers
// @Produce json
// @Param customer_page query int false "Page number, starting at 1"
// @Param delete_error_message query string false "Error left by a failed deletion"
// @Success 200 {object} dto.ViewResponse "Customer list view"
// @Failure 401 {object} dto.ViewResponse "Login view"
// @Failure 403 {object} dto.ViewResponse "Access denied view"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.view.Write(w, r, h.workflow.ListCustomers(r.Context()))
}

// ViewCustomer renders the customer edit form.
//
// @Summary Show the customer edit form
// @Description Renders the "customer-edit" view for a customer with its addresses.
// @Tags Customers
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} dto.ViewResponse "Customer edit view"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/customer/update/{customer_id} [get]
// @Security BearerAuth
func (h *CustomerHandler) ViewCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	h.view.Write(w, r, h.workflow.ViewCustomer(r.Context(), customerID))
}

// UpdateCustomer submits the customer edit form.
//
// @Summary Update a customer
// @Description Validates the submitted form and updates the customer. Redirects on success, re-renders the form with errors otherwise. `save_mode=close` returns to the list.
// @Tags Customers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param customer_id path int true "Customer ID"
// @Param save_mode formData string false "close to return to the customer list"
// @Success 302 "Redirect after a successful update"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or form encoding"
// @Failure 422 {object} dto.ViewResponse "Edit view with the error message"
// @Router /admin/customer/update/{customer_id} [post]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	h.view.Write(w, r, h.workflow.UpdateCustomer(r.Context(), customerID, r.PostForm))
}

// DeleteCustomer removes a customer account.
//
// @Summary Delete a customer
// @Description Deletes the customer and redirects to the customer list, carrying `delete_error_message` on failure.
// @Tags Customers
// @Accept x-www-form-urlencoded
// @Param customer_id formData int true "Customer ID"
// @Param customer_page formData int false "List page to return to"
// @Success 302 "Redirect to the customer list"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Router /admin/customer/delete [post]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	customerID, err := parseID(r.PostForm.Get("customer_id"), "customer_id")
	if err != nil {
		respondError(w, err)
		return
	}
	page := parsePage(r.PostForm.Get("customer_page"))
	h.view.Write(w, r, h.workflow.DeleteCustomer(r.Context(), customerID, page))
}

// DeleteAddress removes one address of a customer.
//
// @Summary Delete a customer address
// @Description Deletes the address and redirects to its owner's edit form.
// @Tags Customers
// @Accept x-www-form-urlencoded
// @Param address_id formData int true "Address ID"
// @Success 302 "Redirect to the customer edit form"
// @Failure 400 {object} dto.ErrorResponse "Invalid address ID"
// @Router /admin/address/delete [post]
// @Security BearerAuth
func (h *CustomerHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	addressID, err := parseID(r.PostForm.Get("address_id"), "address_id")
	if err != nil {
		respondError(w, err)
		return
	}
	h.view.Write(w, r, h.workflow.DeleteAddress(r.Context(), addressID))
}
