package services

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
)

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

// memCustomerStore is an in-memory CustomerStore keyed by phone.
type memCustomerStore struct {
	byPhone map[string]*models.Customer
	nextID  uint
}

func newMemCustomerStore(customers ...*models.Customer) *memCustomerStore {
	s := &memCustomerStore{byPhone: map[string]*models.Customer{}, nextID: 1}
	for _, c := range customers {
		if c.ID == 0 {
			c.ID = s.nextID
		}
		s.nextID = c.ID + 1
		s.byPhone[c.Phone] = c
	}
	return s
}

func (s *memCustomerStore) Create(c *models.Customer) error {
	c.ID = s.nextID
	s.nextID++
	s.byPhone[c.Phone] = c
	return nil
}

func (s *memCustomerStore) FindByPhone(phone string) (*models.Customer, error) {
	c, ok := s.byPhone[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *memCustomerStore) FindByID(id uint) (*models.Customer, error) {
	for _, c := range s.byPhone {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memCustomerStore) Update(c *models.Customer) error {
	for phone, existing := range s.byPhone {
		if existing.ID == c.ID && phone != c.Phone {
			delete(s.byPhone, phone)
		}
	}
	copied := *c
	s.byPhone[c.Phone] = &copied
	return nil
}

func (s *memCustomerStore) AddPoints(phone string, delta float64) error {
	c, ok := s.byPhone[phone]
	if !ok || c.Points+delta < 0 {
		return ErrInsufficientPoint
	}
	c.Points += delta
	return nil
}

func (s *memCustomerStore) Search(query string) ([]models.Customer, error) {
	return s.All()
}

func (s *memCustomerStore) All() ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(s.byPhone))
	for _, c := range s.byPhone {
		out = append(out, *c)
	}
	return out, nil
}

// memCheckoutStore mimics the transactional purchase repository: stock is
// decremented only when every line can be fulfilled, and a shortfall leaves
// everything untouched.
type memCheckoutStore struct {
	customers *memCustomerStore
	products  map[uint]*models.Product
	created   []*models.Purchase
}

func newMemCheckoutStore(customers *memCustomerStore, products ...*models.Product) *memCheckoutStore {
	s := &memCheckoutStore{customers: customers, products: map[uint]*models.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memCheckoutStore) ProductsByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memCheckoutStore) CreatePurchase(p *models.Purchase) error {
	for _, item := range p.Items {
		product := s.products[item.ProductID]
		if product == nil || product.Stock < item.Quantity {
			available := 0
			if product != nil {
				available = product.Stock
			}
			return &InsufficientStockError{
				Product:   item.ProductName,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}

	for _, item := range p.Items {
		s.products[item.ProductID].Stock -= item.Quantity
	}

	p.ID = uint(len(s.created) + 1)
	s.created = append(s.created, p)

	if p.Phone != "" && p.PointsEarned > 0 {
		if c, ok := s.customers.byPhone[p.Phone]; ok {
			c.Points += p.PointsEarned
		}
	}
	return nil
}

// memStaffStore is an in-memory StaffStore keyed by email.
type memStaffStore struct {
	byEmail map[string]*models.Staff
	nextID  uint
}

func newMemStaffStore() *memStaffStore {
	return &memStaffStore{byEmail: map[string]*models.Staff{}, nextID: 1}
}

func (s *memStaffStore) FindByEmail(email string) (*models.Staff, error) {
	st, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *st
	return &copied, nil
}

func (s *memStaffStore) FindByID(id uint) (*models.Staff, error) {
	for _, st := range s.byEmail {
		if st.ID == id {
			copied := *st
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStaffStore) Create(staff *models.Staff) error {
	staff.ID = s.nextID
	s.nextID++
	s.byEmail[staff.Email] = staff
	return nil
}

func (s *memStaffStore) UpdatePassword(id uint, hash string) error {
	for _, st := range s.byEmail {
		if st.ID == id {
			st.Password = hash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *memStaffStore) All() ([]models.Staff, error) {
	out := make([]models.Staff, 0, len(s.byEmail))
	for _, st := range s.byEmail {
		out = append(out, *st)
	}
	return out, nil
}

// memProductStore is an in-memory ProductStore.
type memProductStore struct {
	byID   map[uint]*models.Product
	nextID uint
}

func newMemProductStore(products ...*models.Product) *memProductStore {
	s := &memProductStore{byID: map[uint]*models.Product{}, nextID: 1}
	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		s.nextID = p.ID + 1
		s.byID[p.ID] = p
	}
	return s
}

func (s *memProductStore) Create(p *models.Product) error {
	p.ID = s.nextID
	s.nextID++
	s.byID[p.ID] = p
	return nil
}

func (s *memProductStore) Update(p *models.Product) error {
	if _, ok := s.byID[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *p
	s.byID[p.ID] = &copied
	return nil
}

func (s *memProductStore) FindByID(id uint) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memProductStore) All() ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memProductStore) AtOrBelowStock(threshold int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.byID {
		if p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}
