package repositories

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/app/services"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(c *models.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) FindByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(c *models.Customer) error {
	return r.db.Save(c).Error
}

// AddPoints moves the balance by delta. The WHERE clause keeps the balance
// from going negative when two redemptions race past the service's check.
func (r *CustomerRepository) AddPoints(phone string, delta float64) error {
	res := r.db.Model(&models.Customer{}).
		Where("phone = ? AND points + ? >= 0", phone, delta).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrInsufficientPoint
	}
	return nil
}

func (r *CustomerRepository) Search(query string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR phone LIKE ?", pattern, pattern).
		Order("name").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) All() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
