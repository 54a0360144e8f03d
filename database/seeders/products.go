package seeders

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a small starter catalogue so a fresh install has
// something to sell. Skipped when the table already has rows.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []models.Product{
		{Name: "Banarasi Silk Saree", Category: "Saree", Brand: "Spectra Weaves", Price: 8499, Stock: 12},
		{Name: "Cotton Kurti", Category: "Kurti", Brand: "Spectra Basics", Price: 1299, Stock: 40},
		{Name: "Chiffon Dupatta", Category: "Dupatta", Brand: "Spectra Basics", Price: 649, Stock: 25},
		{Name: "Anarkali Suit Set", Category: "Suit", Brand: "Spectra Couture", Price: 5999, Stock: 8},
		{Name: "Georgette Lehenga", Category: "Lehenga", Brand: "Spectra Couture", Price: 15999, Stock: 5},
	}

	return db.Create(&starter).Error
}
