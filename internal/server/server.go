// Package server boots the whole application: configuration, database,
// cache, storage, queue workers, event listeners, the scheduler, the gRPC
// health endpoint, and finally the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spectraretail/spectra-pos/app/controllers"
	"github.com/spectraretail/spectra-pos/app/graph"
	"github.com/spectraretail/spectra-pos/app/jobs"
	"github.com/spectraretail/spectra-pos/app/repositories"
	"github.com/spectraretail/spectra-pos/app/routes"
	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/config"
	_ "github.com/spectraretail/spectra-pos/database/migrations"
	"github.com/spectraretail/spectra-pos/pkg/cache"
	"github.com/spectraretail/spectra-pos/pkg/database"
	"github.com/spectraretail/spectra-pos/pkg/event"
	grpcserver "github.com/spectraretail/spectra-pos/pkg/grpc"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/metrics"
	"github.com/spectraretail/spectra-pos/pkg/middleware"
	"github.com/spectraretail/spectra-pos/pkg/migration"
	"github.com/spectraretail/spectra-pos/pkg/queue"
	"github.com/spectraretail/spectra-pos/pkg/reqid"
	"github.com/spectraretail/spectra-pos/pkg/router"
	"github.com/spectraretail/spectra-pos/pkg/schedule"
	"github.com/spectraretail/spectra-pos/pkg/session"
	"github.com/spectraretail/spectra-pos/pkg/storage"
	"github.com/spectraretail/spectra-pos/pkg/ws"
)

// Start boots every subsystem and serves HTTP until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		if _, err := logger.AttachMongo(uri, config.LogMongoDB()); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, falling back to in-process cache and queue", "error", err)
	}
	storage.Connect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories, services, controllers.
	staffRepo := repositories.NewStaffRepository(database.DB)
	productRepo := repositories.NewProductRepository(database.DB)
	customerRepo := repositories.NewCustomerRepository(database.DB)
	purchaseRepo := repositories.NewPurchaseRepository(database.DB)

	authSvc := services.NewAuthService(staffRepo)
	catalogSvc := services.NewCatalogService(productRepo)
	customerSvc := services.NewCustomerService(customerRepo)
	loyaltySvc := services.NewLoyaltyService(customerRepo)
	checkoutSvc := services.NewCheckoutService(purchaseRepo, customerRepo, loyaltySvc)
	reportSvc := services.NewReportService(purchaseRepo)

	// Queue: Redis transport when available, otherwise in-memory.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.Boot(catalogSvc)
	queue.StartWorkers(ctx, 4)

	// Inventory websocket hub plus the listeners that feed it.
	hub := ws.NewHub()
	go hub.Run()
	registerListeners(hub, catalogSvc)

	RegisterSchedule(reportSvc, productRepo)
	schedule.Start(ctx)

	// gRPC health endpoint, only when a port is configured.
	if port := config.GRPCPort(); port != "" {
		srv, err := grpcserver.Start(port)
		if err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		defer grpcserver.Stop(srv)
	}

	schema, err := graph.NewSchema(catalogSvc, customerSvc, purchaseRepo)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recover,
		middleware.CORS,
		metrics.Middleware(),
		session.Middleware(session.DefaultOptions()),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc),
		Catalog:   controllers.NewCatalogController(catalogSvc),
		Customers: controllers.NewCustomerController(customerSvc, purchaseRepo),
		Checkout:  controllers.NewCheckoutController(checkoutSvc, loyaltySvc),
		Reports:   controllers.NewReportController(reportSvc, catalogSvc, customerSvc),
	}, schema, hub)

	addr := ":" + config.AppPort()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	cancel()
	event.Flush()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}

// registerListeners connects domain events to the websocket hub and the
// background jobs they trigger.
func registerListeners(hub *ws.Hub, catalog *services.CatalogService) {
	event.Listen(services.EventStockChanged, func(payload interface{}) {
		change, ok := payload.(services.StockChanged)
		if !ok {
			return
		}
		catalog.InvalidateListing()

		product, err := catalog.Get(change.ProductID)
		if err != nil {
			logger.Warn("stock listener lookup failed", "product_id", change.ProductID, "error", err)
			return
		}

		hub.Publish("stock.changed", map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
			"stock":      product.Stock,
		})

		if product.Stock <= config.LowStockThreshold() {
			if err := queue.Dispatch(&jobs.LowStockAlertJob{ProductID: product.ID}); err != nil {
				logger.Error("low stock alert dispatch failed", "product_id", product.ID, "error", err)
			}
		}
	})

	event.Listen(services.EventCheckoutCompleted, func(payload interface{}) {
		done, ok := payload.(services.CheckoutCompleted)
		if !ok {
			return
		}

		frame := map[string]interface{}{
			"purchase_id": done.Purchase.ID,
			"total":       done.Purchase.Total,
			"items":       len(done.Purchase.Items),
		}
		if done.Customer != nil {
			frame["phone"] = done.Customer.Phone
		}
		hub.Publish("checkout.completed", frame)
	})
}

// RegisterSchedule declares the recurring work. The serve command starts
// the loop afterwards; schedule:list only wants the registrations.
func RegisterSchedule(reports *services.ReportService, products services.ProductStore) {
	schedule.Cron("30 0 * * *").
		Name("reports.daily_export").
		WithoutOverlapping().
		Run(reports.ExportDaily)

	schedule.Every(time.Minute).
		Name("metrics.low_stock_gauge").
		Run(func() {
			low, err := products.AtOrBelowStock(config.LowStockThreshold())
			if err != nil {
				logger.Warn("low stock gauge refresh failed", "error", err)
				return
			}
			metrics.LowStockProducts.Set(float64(len(low)))
		})
}
