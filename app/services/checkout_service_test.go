package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/models"
)

func checkoutFixture(customers ...*models.Customer) (*CheckoutService, *memCheckoutStore, *memCustomerStore) {
	customerStore := newMemCustomerStore(customers...)
	store := newMemCheckoutStore(customerStore,
		&models.Product{Model: gormModel(1), Name: "Silk Saree", Category: "Saree", Price: 8000, Stock: 10},
		&models.Product{Model: gormModel(2), Name: "Cotton Kurti", Category: "Kurti", Price: 1200, Stock: 3},
	)
	loyalty := NewLoyaltyService(customerStore).WithClock(fixedClock("2026-01-15"))
	return NewCheckoutService(store, customerStore, loyalty), store, customerStore
}

func TestCheckoutWalkIn(t *testing.T) {
	svc, store, _ := checkoutFixture()

	purchase, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 17200, purchase.Total, 0.0001)
	assert.Zero(t, purchase.PointsEarned)
	assert.Len(t, purchase.Items, 2)

	assert.Equal(t, 8, store.products[1].Stock)
	assert.Equal(t, 2, store.products[2].Stock)
}

func TestCheckoutSnapshotsLineItems(t *testing.T) {
	svc, _, _ := checkoutFixture()

	purchase, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	item := purchase.Items[0]
	assert.Equal(t, "Silk Saree", item.ProductName)
	assert.Equal(t, "Saree", item.Category)
	assert.InDelta(t, 8000, item.UnitPrice, 0.0001)
	assert.InDelta(t, 16000, item.LineTotal, 0.0001)
}

func TestCheckoutCreditsPoints(t *testing.T) {
	svc, _, customers := checkoutFixture(
		&models.Customer{Phone: "9876543210", Name: "Asha"},
	)

	purchase, err := svc.Checkout(CheckoutInput{
		Phone: "9876543210",
		Lines: []CartLine{{ProductID: 1, Quantity: 5}}, // 40000
	})
	require.NoError(t, err)

	assert.InDelta(t, 6.0, purchase.PointsEarned, 0.0001)
	assert.Empty(t, purchase.Offer)

	stored, err := customers.FindByPhone("9876543210")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, stored.Points, 0.0001)
}

func TestCheckoutEventWeekBonus(t *testing.T) {
	svc, _, _ := checkoutFixture(
		&models.Customer{Phone: "9876543210", Name: "Asha", DateOfBirth: "2026-01-18"},
	)

	// 2026-01-15 is inside the week before the birthday.
	purchase, err := svc.Checkout(CheckoutInput{
		Phone: "9876543210",
		Lines: []CartLine{{ProductID: 1, Quantity: 5}}, // 40000
	})
	require.NoError(t, err)

	assert.InDelta(t, 30.0, purchase.PointsEarned, 0.0001)
	assert.Contains(t, purchase.Offer, "Birthday week")
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDuplicateLine(t *testing.T) {
	svc, store, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrDuplicateLine)
	assert.Equal(t, 10, store.products[1].Stock)
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	svc, _, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{{ProductID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc, _, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCheckoutUnknownCustomer(t *testing.T) {
	svc, store, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{
		Phone: "0000000000",
		Lines: []CartLine{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, 10, store.products[1].Stock)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	svc, store, customers := checkoutFixture(
		&models.Customer{Phone: "9876543210", Name: "Asha"},
	)

	_, err := svc.Checkout(CheckoutInput{
		Phone: "9876543210",
		Lines: []CartLine{{ProductID: 2, Quantity: 5}}, // only 3 in stock
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cotton Kurti", stockErr.Product)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	// Nothing persisted, nothing credited.
	assert.Empty(t, store.created)
	assert.Equal(t, 3, store.products[2].Stock)
	stored, _ := customers.FindByPhone("9876543210")
	assert.Zero(t, stored.Points)
}

func TestCheckoutPartialShortfallRollsBackWholeCart(t *testing.T) {
	svc, store, _ := checkoutFixture()

	_, err := svc.Checkout(CheckoutInput{
		Lines: []CartLine{
			{ProductID: 1, Quantity: 1}, // fulfillable
			{ProductID: 2, Quantity: 4}, // shortfall
		},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, store.products[1].Stock)
	assert.Equal(t, 3, store.products[2].Stock)
}
