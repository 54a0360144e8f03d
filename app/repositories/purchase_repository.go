package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/app/services"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) ProductsByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreatePurchase applies the sale in one transaction. Each line's stock is
// decremented behind an availability guard in the WHERE clause, so two
// registers selling the last unit cannot both win; a zero-row update means
// the stock moved underneath us and the whole sale rolls back.
func (r *PurchaseRepository) CreatePurchase(p *models.Purchase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range p.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var current models.Product
				available := 0
				if err := tx.First(&current, item.ProductID).Error; err == nil {
					available = current.Stock
				}
				return &services.InsufficientStockError{
					Product:   item.ProductName,
					Requested: item.Quantity,
					Available: available,
				}
			}
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if p.Phone != "" && p.PointsEarned > 0 {
			err := tx.Model(&models.Customer{}).
				Where("phone = ?", p.Phone).
				Update("points", gorm.Expr("points + ?", p.PointsEarned)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PurchaseRepository) Between(from, to time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *PurchaseRepository) FindByID(id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Items").First(&purchase, id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) ByPhone(phone string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Preload("Items").
		Where("phone = ?", phone).
		Order("created_at desc").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}
