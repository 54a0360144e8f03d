package models

import "gorm.io/gorm"

// Purchase is the historical record of one completed checkout. Rows are
// immutable once written; corrections happen as new records, never edits.
type Purchase struct {
	gorm.Model
	Phone        string         `gorm:"size:10;index" json:"phone,omitempty"` // empty for walk-in sales
	Total        float64        `gorm:"not null"      json:"total"`
	PointsEarned float64        `gorm:"not null;default:0" json:"points_earned"`
	Offer        string         `gorm:"-" json:"offer,omitempty"` // event-week banner on the receipt, not persisted
	Items        []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
}

// PurchaseItem snapshots one line of a purchase. Product name, category and
// unit price are copied at checkout time so the receipt survives later
// catalogue edits.
type PurchaseItem struct {
	gorm.Model
	PurchaseID  uint    `gorm:"not null;index" json:"-"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Category    string  `gorm:"size:100" json:"category"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	LineTotal   float64 `gorm:"not null" json:"line_total"`
}
