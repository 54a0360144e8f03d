package models

import "gorm.io/gorm"

// Staff roles. Only owners may manage other staff accounts.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// Staff is a store employee account, keyed by email.
type Staff struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;not null;default:cashier" json:"role"`
}
