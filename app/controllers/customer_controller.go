package controllers

import (
	"errors"
	"net/http"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/pkg/bind"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/response"
)

type CustomerController struct {
	customers *services.CustomerService
	purchases services.PurchaseStore
}

func NewCustomerController(customers *services.CustomerService, purchases services.PurchaseStore) *CustomerController {
	return &CustomerController{customers: customers, purchases: purchases}
}

// Index lists every customer.
func (c *CustomerController) Index(w http.ResponseWriter, r *http.Request) {
	customers, err := c.customers.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("customer listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list customers")
		return
	}
	response.Success(w, customers)
}

// Store registers a customer.
func (c *CustomerController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CustomerInput
	if !bind.JSON(w, r, &in) {
		return
	}

	customer, err := c.customers.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			response.Conflict(w, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("customer create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not register customer")
		return
	}
	response.Created(w, customer)
}

// Update rewrites a customer's profile.
func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var in services.CustomerInput
	if !bind.JSON(w, r, &in) {
		return
	}

	customer, err := c.customers.Update(id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			response.NotFound(w, "customer not found")
		case errors.Is(err, services.ErrPhoneTaken):
			response.Conflict(w, err.Error())
		default:
			logger.WithCtx(r.Context()).Error("customer update failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "could not update customer")
		}
		return
	}
	response.Success(w, customer)
}

// Search matches customers by name or phone fragment via the q parameter.
func (c *CustomerController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.Error(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	customers, err := c.customers.Search(query)
	if err != nil {
		logger.WithCtx(r.Context()).Error("customer search failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not search customers")
		return
	}
	response.Success(w, customers)
}

// Show fetches one customer by phone, with purchase history.
func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		response.Error(w, http.StatusBadRequest, "query parameter phone is required")
		return
	}

	customer, err := c.customers.Lookup(phone)
	if err != nil {
		response.NotFound(w, "customer not found")
		return
	}

	history, err := c.purchases.ByPhone(phone)
	if err != nil {
		logger.WithCtx(r.Context()).Error("purchase history failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not load purchase history")
		return
	}

	response.Success(w, map[string]interface{}{
		"customer":  customer,
		"purchases": history,
	})
}
