package controllers

import (
	"net/http"
	"time"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/response"
	"github.com/spectraretail/spectra-pos/pkg/validate"
)

type ReportController struct {
	reports   *services.ReportService
	catalog   *services.CatalogService
	customers *services.CustomerService
}

func NewReportController(reports *services.ReportService, catalog *services.CatalogService, customers *services.CustomerService) *ReportController {
	return &ReportController{reports: reports, catalog: catalog, customers: customers}
}

// period reads from/to query parameters, defaulting to the last 30 days.
func period(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := validate.ParseDate(s)
		if err != nil {
			return from, to, false
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := validate.ParseDate(s)
		if err != nil {
			return from, to, false
		}
		// Include the whole end day.
		to = t.Add(24 * time.Hour)
	}

	return from, to, true
}

// Sales summarizes the period's purchases.
func (c *ReportController) Sales(w http.ResponseWriter, r *http.Request) {
	from, to, ok := period(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	summary, err := c.reports.Summarize(from, to)
	if err != nil {
		logger.WithCtx(r.Context()).Error("sales summary failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not build sales report")
		return
	}
	response.Success(w, summary)
}

// Export writes the period's line items to a CSV on the storage disk and
// returns where it landed.
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	from, to, ok := period(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
		return
	}

	path, url, err := c.reports.ExportCSV(from, to)
	if err != nil {
		logger.WithCtx(r.Context()).Error("sales export failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not export sales report")
		return
	}

	response.Success(w, map[string]string{"path": path, "url": url})
}

// Dashboard is the landing summary: today's sales, low stock, and registry
// size.
func (c *ReportController) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := c.reports.Summarize(dayStart, now)
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard summary failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}

	lowStock, err := c.catalog.LowStock(config.LowStockThreshold())
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard low stock failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}

	customers, err := c.customers.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard customers failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}

	response.Success(w, map[string]interface{}{
		"today":     today,
		"low_stock": lowStock,
		"customers": len(customers),
	})
}
