package models

import "gorm.io/gorm"

// Customer is a loyalty-programme member, looked up by phone at the till.
// Birthday and anniversary are stored as plain YYYY-MM-DD strings, exactly
// as entered at registration; LoyaltyService interprets them.
type Customer struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null"          json:"name"`
	Address     string  `gorm:"size:500"                   json:"address"`
	Phone       string  `gorm:"uniqueIndex;size:10;not null" json:"phone"`
	DateOfBirth string  `gorm:"size:10"                    json:"date_of_birth"`
	Anniversary string  `gorm:"size:10"                    json:"anniversary"`
	Interests   string  `gorm:"size:500"                   json:"interests"`
	Points      float64 `gorm:"not null;default:0"         json:"points"`
}
