package services

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/storage"
)

// memPurchaseStore returns its fixed purchases for any period.
type memPurchaseStore struct {
	purchases []models.Purchase
}

func (s *memPurchaseStore) Between(from, to time.Time) ([]models.Purchase, error) {
	return s.purchases, nil
}

func (s *memPurchaseStore) FindByID(id uint) (*models.Purchase, error) {
	for i := range s.purchases {
		if s.purchases[i].ID == id {
			return &s.purchases[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memPurchaseStore) ByPhone(phone string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, p := range s.purchases {
		if p.Phone == phone {
			out = append(out, p)
		}
	}
	return out, nil
}

// memDisk is an in-memory storage disk.
type memDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, content)
}

func (d *memDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files[path], nil
}

func (d *memDisk) GetStream(path string) (io.ReadCloser, error) {
	content, err := d.Get(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(string(content))), nil
}

func (d *memDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *memDisk) Files(directory string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for path := range d.files {
		if strings.HasPrefix(path, directory) {
			out = append(out, path)
		}
	}
	return out, nil
}

func (d *memDisk) LastModified(path string) (time.Time, error) { return time.Time{}, nil }

func (d *memDisk) URL(path string) string { return "/storage/" + path }

func samplePurchases() []models.Purchase {
	return []models.Purchase{
		{
			Model:        gormModel(1),
			Phone:        "9876543210",
			Total:        17200,
			PointsEarned: 2.58,
			Items: []models.PurchaseItem{
				{ProductID: 1, ProductName: "Silk Saree", Category: "Saree", Quantity: 2, UnitPrice: 8000, LineTotal: 16000},
				{ProductID: 2, ProductName: "Cotton Kurti", Category: "Kurti", Quantity: 1, UnitPrice: 1200, LineTotal: 1200},
			},
		},
		{
			Model: gormModel(2),
			Total: 1200,
			Items: []models.PurchaseItem{
				{ProductID: 2, ProductName: "Cotton Kurti", Category: "Kurti", Quantity: 1, UnitPrice: 1200, LineTotal: 1200},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	svc := NewReportService(&memPurchaseStore{purchases: samplePurchases()})

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	summary, err := svc.Summarize(from, to)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Sales)
	assert.InDelta(t, 18400, summary.Revenue, 0.0001)
	assert.InDelta(t, 2.58, summary.PointsIssued, 0.0001)
	assert.InDelta(t, 16000, summary.ByCategory["Saree"], 0.0001)
	assert.InDelta(t, 2400, summary.ByCategory["Kurti"], 0.0001)
}

func TestSummarizeEmptyPeriod(t *testing.T) {
	svc := NewReportService(&memPurchaseStore{})

	summary, err := svc.Summarize(time.Now().AddDate(0, 0, -1), time.Now())
	require.NoError(t, err)

	assert.Zero(t, summary.Sales)
	assert.Zero(t, summary.Revenue)
	assert.Empty(t, summary.ByCategory)
}

func TestExportCSV(t *testing.T) {
	disk := newMemDisk()
	storage.RegisterDisk("mem", disk)

	svc := NewReportService(&memPurchaseStore{purchases: samplePurchases()})

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	path, url, err := svc.ExportCSV(from, to)
	require.NoError(t, err)
	assert.Contains(t, path, "sales_20260101_20260131.csv")
	assert.NotEmpty(t, url)

	content, err := storage.Use("mem").Get(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4) // header plus three line items
	assert.Equal(t, "purchase_id,date,phone,product,category,quantity,unit_price,line_total,points_earned", lines[0])
	assert.Contains(t, lines[1], "Silk Saree")
	assert.Contains(t, lines[1], "9876543210")
}
