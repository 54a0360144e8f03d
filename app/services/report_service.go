package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/collection"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/storage"
)

// PurchaseStore is the persistence surface for sales reporting.
type PurchaseStore interface {
	Between(from, to time.Time) ([]models.Purchase, error)
	FindByID(id uint) (*models.Purchase, error)
	ByPhone(phone string) ([]models.Purchase, error)
}

// ReportService summarizes sales and exports them as CSV files through the
// storage disk.
type ReportService struct {
	purchases PurchaseStore
	now       func() time.Time
}

func NewReportService(purchases PurchaseStore) *ReportService {
	return &ReportService{purchases: purchases, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// SalesSummary aggregates a period's purchases.
type SalesSummary struct {
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	Sales        int                `json:"sales"`
	Revenue      float64            `json:"revenue"`
	PointsIssued float64            `json:"points_issued"`
	ByCategory   map[string]float64 `json:"by_category"`
}

// Summarize totals purchases between from and to.
func (s *ReportService) Summarize(from, to time.Time) (*SalesSummary, error) {
	purchases, err := s.purchases.Between(from, to)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		From:         from,
		To:           to,
		Sales:        len(purchases),
		Revenue:      collection.Sum(purchases, func(p models.Purchase) float64 { return p.Total }),
		PointsIssued: collection.Sum(purchases, func(p models.Purchase) float64 { return p.PointsEarned }),
		ByCategory:   map[string]float64{},
	}

	for _, p := range purchases {
		for cat, items := range collection.GroupBy(p.Items, func(i models.PurchaseItem) string { return i.Category }) {
			summary.ByCategory[cat] += collection.Sum(items, func(i models.PurchaseItem) float64 { return i.LineTotal })
		}
	}

	return summary, nil
}

// ExportCSV writes a line-item CSV for the period to the default storage
// disk and returns its path and fetch URL.
func (s *ReportService) ExportCSV(from, to time.Time) (string, string, error) {
	purchases, err := s.purchases.Between(from, to)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"purchase_id", "date", "phone", "product", "category", "quantity", "unit_price", "line_total", "points_earned"}) //nolint:errcheck

	for _, p := range purchases {
		for _, item := range p.Items {
			w.Write([]string{ //nolint:errcheck
				strconv.FormatUint(uint64(p.ID), 10),
				p.CreatedAt.Format("2006-01-02 15:04:05"),
				p.Phone,
				item.ProductName,
				item.Category,
				strconv.Itoa(item.Quantity),
				formatAmount(item.UnitPrice),
				formatAmount(item.LineTotal),
				formatAmount(p.PointsEarned),
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", fmt.Errorf("report: write csv: %w", err)
	}

	path := fmt.Sprintf("%s/sales_%s_%s.csv",
		config.ReportPrefix(),
		from.Format("20060102"),
		to.Format("20060102"),
	)

	if err := storage.Put(path, buf.Bytes()); err != nil {
		return "", "", fmt.Errorf("report: store csv: %w", err)
	}

	logger.Info("sales report exported", "path", path, "purchases", len(purchases))
	return path, storage.URL(path), nil
}

// ExportDaily exports yesterday's sales; the scheduler runs it overnight.
func (s *ReportService) ExportDaily() {
	now := s.now()
	from := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	if _, _, err := s.ExportCSV(from, to); err != nil {
		logger.Error("daily sales export failed", "error", err)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
