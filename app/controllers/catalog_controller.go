package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/bind"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/response"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func routeID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	return uint(id), err == nil && id > 0
}

// Index lists the catalog.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Products()
	if err != nil {
		logger.WithCtx(r.Context()).Error("product listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list products")
		return
	}
	response.Success(w, products)
}

// Show fetches one product.
func (c *CatalogController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := c.catalog.Get(id)
	if err != nil {
		response.NotFound(w, "product not found")
		return
	}
	response.Success(w, product)
}

// Store adds a product.
func (c *CatalogController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if !bind.JSON(w, r, &in) {
		return
	}

	product, err := c.catalog.Add(in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not add product")
		return
	}
	response.Created(w, product)
}

// Update rewrites a product.
func (c *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var in services.ProductInput
	if !bind.JSON(w, r, &in) {
		return
	}

	product, err := c.catalog.Update(id, in)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("product update failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	response.Success(w, product)
}

type restockInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// Restock adds units to a product.
func (c *CatalogController) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var in restockInput
	if !bind.JSON(w, r, &in) {
		return
	}

	product, err := c.catalog.Restock(id, in.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("restock failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not restock product")
		return
	}
	response.Success(w, product)
}

// LowStock lists products at or below the configured threshold.
func (c *CatalogController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.LowStock(config.LowStockThreshold())
	if err != nil {
		logger.WithCtx(r.Context()).Error("low stock listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list low stock")
		return
	}
	response.Success(w, products)
}
