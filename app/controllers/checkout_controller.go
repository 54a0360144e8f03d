package controllers

import (
	"errors"
	"net/http"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/pkg/bind"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/response"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	loyalty  *services.LoyaltyService
}

func NewCheckoutController(checkout *services.CheckoutService, loyalty *services.LoyaltyService) *CheckoutController {
	return &CheckoutController{checkout: checkout, loyalty: loyalty}
}

// Checkout rings up a cart. A rejection leaves stock, purchases, and points
// exactly as they were.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var in services.CheckoutInput
	if !bind.JSON(w, r, &in) {
		return
	}

	purchase, err := c.checkout.Checkout(in)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			response.Conflict(w, stockErr.Error())
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrDuplicateLine),
			errors.Is(err, services.ErrInvalidQuantity):
			response.Error(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrProductNotFound):
			response.NotFound(w, "product not found")
		case errors.Is(err, services.ErrCustomerNotFound):
			response.NotFound(w, "customer not found")
		default:
			logger.WithCtx(r.Context()).Error("checkout failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "could not complete checkout")
		}
		return
	}

	response.Created(w, purchase)
}

type redeemInput struct {
	Phone  string  `json:"phone" validate:"required,digits=10"`
	Points float64 `json:"points" validate:"required,gt=0"`
}

// Redeem deducts loyalty points from a customer's balance.
func (c *CheckoutController) Redeem(w http.ResponseWriter, r *http.Request) {
	var in redeemInput
	if !bind.JSON(w, r, &in) {
		return
	}

	customer, err := c.loyalty.Redeem(in.Phone, in.Points)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			response.NotFound(w, "customer not found")
		case errors.Is(err, services.ErrBelowRedeemFloor),
			errors.Is(err, services.ErrInsufficientPoint):
			response.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			logger.WithCtx(r.Context()).Error("redeem failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "could not redeem points")
		}
		return
	}

	response.Success(w, customer)
}
