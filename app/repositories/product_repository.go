package repositories

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) AtOrBelowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("stock <= ?", threshold).Order("stock").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
