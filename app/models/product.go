package models

import "gorm.io/gorm"

// Product is one sellable catalogue entry. Stock is decremented only by the
// checkout transaction's guarded UPDATE, so it can never go negative even
// under concurrent checkouts.
type Product struct {
	gorm.Model
	Name     string  `gorm:"size:255;not null;index" json:"name"`
	Category string  `gorm:"size:100"                json:"category"`
	Brand    string  `gorm:"size:100"                json:"brand"`
	Price    float64 `gorm:"not null;default:0"      json:"price"`
	Stock    int     `gorm:"not null;default:0"      json:"stock"`
}
