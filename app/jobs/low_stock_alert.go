// Package jobs holds the background jobs the queue workers run. Jobs are
// rebuilt from their JSON payload on the worker side, so anything beyond the
// payload fields comes from the package-level services wired in Boot.
package jobs

import (
	"fmt"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/notification"
	"github.com/spectraretail/spectra-pos/pkg/queue"
)

var catalog *services.CatalogService

// Boot wires the services jobs need and registers every job type with the
// queue. Call once at startup, before workers begin popping.
func Boot(c *services.CatalogService) {
	catalog = c

	queue.Register("*jobs.LowStockAlertJob", func() queue.Job { return &LowStockAlertJob{} })
}

// LowStockAlertJob mails the owner when a product's stock falls to the
// configured threshold. Dispatched from the stock.changed listener so the
// check runs off the checkout path.
type LowStockAlertJob struct {
	ProductID uint `json:"product_id"`
}

func (j *LowStockAlertJob) Handle() error {
	product, err := catalog.Get(j.ProductID)
	if err != nil {
		return fmt.Errorf("low stock alert: product %d: %w", j.ProductID, err)
	}

	threshold := config.LowStockThreshold()
	if product.Stock > threshold {
		// Restocked between dispatch and processing.
		return nil
	}

	errs := notification.Send(config.OwnerEmail(), &lowStockNotification{
		Name:      product.Name,
		Stock:     product.Stock,
		Threshold: threshold,
	})
	if len(errs) > 0 {
		return fmt.Errorf("low stock alert: %v", errs[0])
	}
	return nil
}

type lowStockNotification struct {
	Name      string
	Stock     int
	Threshold int
}

func (n *lowStockNotification) Via() []string { return []string{"mail"} }

func (n *lowStockNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Low stock: %s", n.Name),
		Body: fmt.Sprintf(
			"<p><strong>%s</strong> is down to %d units (threshold %d). Time to reorder.</p>",
			n.Name, n.Stock, n.Threshold),
		Text: fmt.Sprintf("%s is down to %d units (threshold %d). Time to reorder.",
			n.Name, n.Stock, n.Threshold),
	}
}
