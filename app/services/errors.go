package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrStaffNotFound      = errors.New("staff member not found")

	ErrProductNotFound = errors.New("product not found")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrPhoneTaken       = errors.New("phone number is already registered")

	ErrEmptyCart         = errors.New("cart has no items")
	ErrDuplicateLine     = errors.New("cart lists the same product more than once")
	ErrInvalidQuantity   = errors.New("quantity must be at least one")
	ErrBelowRedeemFloor  = errors.New("a minimum balance of 100 points is required to redeem")
	ErrInsufficientPoint = errors.New("requested points exceed the customer's balance")
)

// InsufficientStockError identifies which product sank the checkout.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Product, e.Requested, e.Available)
}
