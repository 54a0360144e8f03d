package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/event"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/metrics"
)

// CheckoutStore is the persistence surface for the register. CreatePurchase
// must apply the whole sale in one transaction: decrement stock with an
// availability guard, insert the purchase with its line items, and credit
// points to the customer named by the purchase's phone.
type CheckoutStore interface {
	ProductsByIDs(ids []uint) ([]models.Product, error)
	CreatePurchase(p *models.Purchase) error
}

// CheckoutService turns a cart into a purchase: price lookup, stock
// decrement, loyalty accrual, all atomically.
type CheckoutService struct {
	store     CheckoutStore
	customers CustomerStore
	loyalty   *LoyaltyService
}

func NewCheckoutService(store CheckoutStore, customers CustomerStore, loyalty *LoyaltyService) *CheckoutService {
	return &CheckoutService{store: store, customers: customers, loyalty: loyalty}
}

// CartLine is one product and quantity in the cart.
type CartLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// CheckoutInput is the register's submit payload. Phone is empty for
// walk-in sales.
type CheckoutInput struct {
	Phone string     `json:"phone" validate:"nullable,digits=10"`
	Lines []CartLine `json:"lines" validate:"required"`
}

// Checkout processes a sale. Nothing persists unless every line can be
// fulfilled: a duplicate product, an unknown product, or a stock shortfall
// rejects the whole cart.
func (s *CheckoutService) Checkout(in CheckoutInput) (*models.Purchase, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	seen := make(map[uint]bool, len(in.Lines))
	ids := make([]uint, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			metrics.CheckoutRejections.WithLabelValues("invalid_quantity").Inc()
			return nil, ErrInvalidQuantity
		}
		if seen[line.ProductID] {
			metrics.CheckoutRejections.WithLabelValues("duplicate_line").Inc()
			return nil, ErrDuplicateLine
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}

	products, err := s.store.ProductsByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	purchase := &models.Purchase{Phone: in.Phone}
	for _, line := range in.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			metrics.CheckoutRejections.WithLabelValues("unknown_product").Inc()
			return nil, ErrProductNotFound
		}

		lineTotal := product.Price * float64(line.Quantity)
		purchase.Total += lineTotal
		purchase.Items = append(purchase.Items, models.PurchaseItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
	}

	var customer *models.Customer
	if in.Phone != "" {
		customer, err = s.customers.FindByPhone(in.Phone)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		purchase.Offer = s.loyalty.OfferFor(customer)
		purchase.PointsEarned = s.loyalty.PointsFor(purchase.Total, purchase.Offer != "")
	}

	if err := s.store.CreatePurchase(purchase); err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			metrics.CheckoutRejections.WithLabelValues("insufficient_stock").Inc()
			logger.Warn("checkout rejected on stock",
				"product", stockErr.Product, "requested", stockErr.Requested)
		}
		return nil, err
	}

	s.recordSale(purchase, customer)
	return purchase, nil
}

func (s *CheckoutService) recordSale(purchase *models.Purchase, customer *models.Customer) {
	kind := "walk_in"
	if customer != nil {
		kind = "registered"
		customer.Points += purchase.PointsEarned
	}

	metrics.CheckoutsTotal.WithLabelValues(kind).Inc()
	metrics.SaleAmount.Observe(purchase.Total)
	if purchase.PointsEarned > 0 {
		metrics.PointsIssued.Add(purchase.PointsEarned)
	}

	logger.Info("checkout completed",
		"purchase_id", purchase.ID,
		"total", purchase.Total,
		"items", len(purchase.Items),
		"points", purchase.PointsEarned,
	)

	event.Fire(EventCheckoutCompleted, CheckoutCompleted{Purchase: purchase, Customer: customer})
	for _, item := range purchase.Items {
		event.Fire(EventStockChanged, StockChanged{
			ProductID: item.ProductID,
			Name:      item.ProductName,
		})
	}
}
