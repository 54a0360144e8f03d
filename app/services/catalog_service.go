package services

import (
	"time"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/cache"
	"github.com/spectraretail/spectra-pos/pkg/logger"
)

const (
	productListKey = "spectra:products:all"
	productListTTL = 5 * time.Minute
)

// ProductStore is the persistence surface for the catalog.
type ProductStore interface {
	Create(p *models.Product) error
	Update(p *models.Product) error
	FindByID(id uint) (*models.Product, error)
	All() ([]models.Product, error)
	AtOrBelowStock(threshold int) ([]models.Product, error)
}

// CatalogService manages products. The full listing is cached in Redis and
// invalidated on any write, since the register's product grid is the
// hottest read in the system.
type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// ProductInput is the add/update payload.
type ProductInput struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}

// Add creates a product.
func (s *CatalogService) Add(in ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:     in.Name,
		Category: in.Category,
		Brand:    in.Brand,
		Price:    in.Price,
		Stock:    in.Stock,
	}

	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	s.invalidate()
	logger.Info("product added", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update rewrites a product's catalog fields and stock level.
func (s *CatalogService) Update(id uint, in ProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product.Name = in.Name
	product.Category = in.Category
	product.Brand = in.Brand
	product.Price = in.Price
	product.Stock = in.Stock

	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.invalidate()
	return product, nil
}

// Restock adds units to a product's stock. Zero is an accepted no-op so
// idempotent delivery confirmations do not error.
func (s *CatalogService) Restock(id uint, quantity int) (*models.Product, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product.Stock += quantity
	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.invalidate()
	logger.Info("product restocked", "product_id", product.ID, "quantity", quantity, "stock", product.Stock)
	return product, nil
}

// Get fetches one product.
func (s *CatalogService) Get(id uint) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Products lists the catalog, served from Redis when the cache is warm.
func (s *CatalogService) Products() ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(productListKey, &cached) {
		return cached, nil
	}

	products, err := s.products.All()
	if err != nil {
		return nil, err
	}

	if err := cache.Set(productListKey, products, productListTTL); err != nil {
		logger.Warn("product cache set failed", "error", err)
	}
	return products, nil
}

// LowStock lists products at or below the threshold.
func (s *CatalogService) LowStock(threshold int) ([]models.Product, error) {
	return s.products.AtOrBelowStock(threshold)
}

// InvalidateListing drops the cached product list. Checkout calls this
// after stock moves.
func (s *CatalogService) InvalidateListing() {
	s.invalidate()
}

func (s *CatalogService) invalidate() {
	if err := cache.Del(productListKey); err != nil {
		logger.Warn("product cache invalidation failed", "error", err)
	}
}
