// Package repositories implements the services' store interfaces on GORM.
package repositories

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) FindByEmail(email string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.Where("email = ?", email).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) FindByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

func (r *StaffRepository) UpdatePassword(id uint, hash string) error {
	return r.db.Model(&models.Staff{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *StaffRepository) All() ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.Order("id").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
