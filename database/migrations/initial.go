package migrations

import (
	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_staff_table", &CreateStaffTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260101000003_create_purchases_tables", &CreatePurchasesTables{})
}

// -------- 0001: staff --------

type CreateStaffTable struct{}

func (m *CreateStaffTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Staff{})
}

func (m *CreateStaffTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("staffs")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0004: purchases and their line items --------

type CreatePurchasesTables struct{}

func (m *CreatePurchasesTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Purchase{}, &models.PurchaseItem{})
}

func (m *CreatePurchasesTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("purchase_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("purchases")
}
