package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/logger"
)

// CustomerStore is the persistence surface for the customer registry.
type CustomerStore interface {
	Create(c *models.Customer) error
	FindByPhone(phone string) (*models.Customer, error)
	FindByID(id uint) (*models.Customer, error)
	Update(c *models.Customer) error
	AddPoints(phone string, delta float64) error
	Search(query string) ([]models.Customer, error)
	All() ([]models.Customer, error)
}

// CustomerService manages the loyalty registry keyed by phone number.
type CustomerService struct {
	customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput is the registration and update payload. Dates arrive as
// YYYY-MM-DD strings from the register's form controls.
type CustomerInput struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone" validate:"required,digits=10"`
	DateOfBirth string `json:"dob" validate:"nullable,date"`
	Anniversary string `json:"anniversary" validate:"nullable,date"`
	Interests   string `json:"interests"`
}

// Register adds a customer. The phone number is the customer's identity and
// must be unique.
func (s *CustomerService) Register(in CustomerInput) (*models.Customer, error) {
	if _, err := s.customers.FindByPhone(in.Phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := &models.Customer{
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Anniversary: in.Anniversary,
		Interests:   in.Interests,
	}

	if err := s.customers.Create(customer); err != nil {
		return nil, err
	}

	logger.Info("customer registered", "customer_id", customer.ID)
	return customer, nil
}

// Update rewrites a customer's profile fields. Points are untouched here;
// only checkout and redemption move the balance.
func (s *CustomerService) Update(id uint, in CustomerInput) (*models.Customer, error) {
	customer, err := s.customers.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	if in.Phone != customer.Phone {
		if _, err := s.customers.FindByPhone(in.Phone); err == nil {
			return nil, ErrPhoneTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	customer.Name = in.Name
	customer.Address = in.Address
	customer.Phone = in.Phone
	customer.DateOfBirth = in.DateOfBirth
	customer.Anniversary = in.Anniversary
	customer.Interests = in.Interests

	if err := s.customers.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Lookup fetches one customer by phone.
func (s *CustomerService) Lookup(phone string) (*models.Customer, error) {
	customer, err := s.customers.FindByPhone(phone)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// Search matches name or phone fragments.
func (s *CustomerService) Search(query string) ([]models.Customer, error) {
	return s.customers.Search(query)
}

// All lists every registered customer.
func (s *CustomerService) All() ([]models.Customer, error) {
	return s.customers.All()
}
