package services

import "github.com/spectraretail/spectra-pos/app/models"

// Event names fired by the services. Listeners are wired at server boot.
const (
	EventCheckoutCompleted = "checkout.completed"
	EventStockChanged      = "stock.changed"
)

// CheckoutCompleted is the payload of EventCheckoutCompleted.
type CheckoutCompleted struct {
	Purchase *models.Purchase
	// Customer is nil for walk-in sales.
	Customer *models.Customer
}

// StockChanged is the payload of EventStockChanged, one per affected
// product. Listeners fetch the current stock level themselves.
type StockChanged struct {
	ProductID uint
	Name      string
}
