// Package routes mounts the HTTP surface: the JSON API under /api, the
// inventory websocket, and the operational endpoints.
package routes

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/spectraretail/spectra-pos/app/controllers"
	"github.com/spectraretail/spectra-pos/app/models"
	gqlhttp "github.com/spectraretail/spectra-pos/pkg/graphql"
	"github.com/spectraretail/spectra-pos/pkg/metrics"
	"github.com/spectraretail/spectra-pos/pkg/middleware"
	"github.com/spectraretail/spectra-pos/pkg/rbac"
	"github.com/spectraretail/spectra-pos/pkg/router"
	"github.com/spectraretail/spectra-pos/pkg/ws"
)

// Controllers carries everything RegisterAPI mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Catalog   *controllers.CatalogController
	Customers *controllers.CustomerController
	Checkout  *controllers.CheckoutController
	Reports   *controllers.ReportController
}

// RegisterAPI wires the full route table onto r.
func RegisterAPI(r *router.Router, c Controllers, schema graphql.Schema, hub *ws.Hub) {
	api := r.Group("/api")

	// Login and password reset are public and rate limited per IP so
	// credential stuffing stays cheap to absorb.
	api.Post("/login", "auth.login", c.Auth.Login, middleware.RateLimit(1, 5))
	api.Post("/forgot", "auth.forgot", c.Auth.Forgot, middleware.RateLimit(1, 5))

	protected := api.Group("", middleware.Auth)
	protected.Post("/logout", "auth.logout", c.Auth.Logout)

	// Staff management is the owner's alone.
	owner := protected.Group("", rbac.HasRole(models.RoleOwner))
	owner.Post("/register", "auth.register", c.Auth.Register)
	owner.Get("/staff", "auth.staff", c.Auth.Staff)

	protected.Get("/dashboard", "reports.dashboard", c.Reports.Dashboard)

	products := protected.Group("/products")
	products.Get("", "products.index", c.Catalog.Index)
	products.Get("/low-stock", "products.low_stock", c.Catalog.LowStock)
	products.Get("/{id}", "products.show", c.Catalog.Show)

	manage := rbac.HasRole(models.RoleOwner, models.RoleManager)
	products.Post("", "products.store", c.Catalog.Store, manage)
	products.Put("/{id}", "products.update", c.Catalog.Update, manage)
	products.Post("/{id}/restock", "products.restock", c.Catalog.Restock, manage)

	customers := protected.Group("/customers")
	customers.Get("", "customers.index", c.Customers.Index)
	customers.Get("/search", "customers.search", c.Customers.Search)
	customers.Get("/show", "customers.show", c.Customers.Show)
	customers.Post("", "customers.store", c.Customers.Store)
	customers.Put("/{id}", "customers.update", c.Customers.Update)

	protected.Post("/checkout", "checkout.create", c.Checkout.Checkout)
	protected.Post("/redeem", "checkout.redeem", c.Checkout.Redeem)

	reports := protected.Group("/reports", rbac.HasRole(models.RoleOwner, models.RoleManager))
	reports.Get("/sales", "reports.sales", c.Reports.Sales)
	reports.Post("/sales/export", "reports.export", c.Reports.Export)

	protected.Post("/graphql", "graphql.query", gqlhttp.Handler(schema))

	r.Get("/ws/inventory", "ws.inventory", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	}, middleware.Auth)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
}
