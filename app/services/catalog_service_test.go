package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/models"
)

func TestCatalogAdd(t *testing.T) {
	svc := NewCatalogService(newMemProductStore())

	product, err := svc.Add(ProductInput{
		Name:     "Silk Saree",
		Category: "Saree",
		Brand:    "Spectra Weaves",
		Price:    8499,
		Stock:    12,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	got, err := svc.Get(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silk Saree", got.Name)
	assert.Equal(t, 12, got.Stock)
}

func TestCatalogUpdate(t *testing.T) {
	store := newMemProductStore(
		&models.Product{Name: "Kurti", Category: "Kurti", Price: 999, Stock: 5},
	)
	svc := NewCatalogService(store)

	updated, err := svc.Update(1, ProductInput{
		Name:     "Cotton Kurti",
		Category: "Kurti",
		Price:    1299,
		Stock:    8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cotton Kurti", updated.Name)
	assert.InDelta(t, 1299, updated.Price, 0.0001)
	assert.Equal(t, 8, updated.Stock)
}

func TestCatalogUpdateUnknown(t *testing.T) {
	svc := NewCatalogService(newMemProductStore())

	_, err := svc.Update(7, ProductInput{Name: "X", Category: "Y", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogRestock(t *testing.T) {
	store := newMemProductStore(
		&models.Product{Name: "Kurti", Category: "Kurti", Price: 999, Stock: 2},
	)
	svc := NewCatalogService(store)

	product, err := svc.Restock(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, product.Stock)

	// A zero delta is a valid no-op, not a validation failure.
	product, err = svc.Restock(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, product.Stock)

	_, err = svc.Restock(1, -5)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Restock(99, 5)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogLowStock(t *testing.T) {
	store := newMemProductStore(
		&models.Product{Name: "A", Category: "Saree", Price: 1, Stock: 2},
		&models.Product{Name: "B", Category: "Saree", Price: 1, Stock: 5},
		&models.Product{Name: "C", Category: "Saree", Price: 1, Stock: 9},
	)
	svc := NewCatalogService(store)

	low, err := svc.LowStock(5)
	require.NoError(t, err)
	assert.Len(t, low, 2)
}

func TestCatalogProductsWithoutCache(t *testing.T) {
	// cache.Connect never ran here, so Products falls through to the store.
	store := newMemProductStore(
		&models.Product{Name: "A", Category: "Saree", Price: 1, Stock: 2},
	)
	svc := NewCatalogService(store)

	products, err := svc.Products()
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
