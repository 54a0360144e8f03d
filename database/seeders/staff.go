package seeders

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/auth"
)

func init() {
	Register("staff", SeedOwner)
}

// SeedOwner creates the initial owner account from OWNER_EMAIL and
// OWNER_PASSWORD. Without it a fresh install has nobody who can log in.
func SeedOwner(db *gorm.DB) error {
	email := config.OwnerEmail()
	password := config.OwnerPassword()
	if email == "" || password == "" {
		return errors.New("OWNER_EMAIL and OWNER_PASSWORD must be set")
	}

	var existing models.Staff
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	return db.Create(&models.Staff{
		Email:    email,
		Password: hash,
		Role:     models.RoleOwner,
	}).Error
}
