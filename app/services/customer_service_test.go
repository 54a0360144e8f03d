package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/models"
)

func TestCustomerRegister(t *testing.T) {
	svc := NewCustomerService(newMemCustomerStore())

	customer, err := svc.Register(CustomerInput{
		Name:        "Asha Verma",
		Phone:       "9876543210",
		DateOfBirth: "1990-03-10",
		Interests:   "sarees",
	})
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Zero(t, customer.Points)

	found, err := svc.Lookup("9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", found.Name)
}

func TestCustomerRegisterDuplicatePhone(t *testing.T) {
	svc := NewCustomerService(newMemCustomerStore(
		&models.Customer{Phone: "9876543210", Name: "Asha"},
	))

	_, err := svc.Register(CustomerInput{Name: "Other", Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestCustomerUpdate(t *testing.T) {
	store := newMemCustomerStore(
		&models.Customer{Phone: "9876543210", Name: "Asha", Points: 42},
	)
	svc := NewCustomerService(store)
	existing, _ := store.FindByPhone("9876543210")

	updated, err := svc.Update(existing.ID, CustomerInput{
		Name:        "Asha Verma",
		Phone:       "9876543210",
		Anniversary: "2015-11-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", updated.Name)
	assert.Equal(t, "2015-11-02", updated.Anniversary)
	assert.InDelta(t, 42, updated.Points, 0.0001) // profile edits never touch the balance
}

func TestCustomerUpdatePhoneChange(t *testing.T) {
	store := newMemCustomerStore(
		&models.Customer{Phone: "9876543210", Name: "Asha"},
		&models.Customer{Phone: "9123456780", Name: "Meera"},
	)
	svc := NewCustomerService(store)
	asha, _ := store.FindByPhone("9876543210")

	// Moving onto another customer's number is rejected.
	_, err := svc.Update(asha.ID, CustomerInput{Name: "Asha", Phone: "9123456780"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	// A free number is fine.
	updated, err := svc.Update(asha.ID, CustomerInput{Name: "Asha", Phone: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, "9000000001", updated.Phone)

	_, err = svc.Lookup("9876543210")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerUpdateUnknownID(t *testing.T) {
	svc := NewCustomerService(newMemCustomerStore())

	_, err := svc.Update(99, CustomerInput{Name: "Ghost", Phone: "9876543210"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerLookupUnknownPhone(t *testing.T) {
	svc := NewCustomerService(newMemCustomerStore())

	_, err := svc.Lookup("0000000000")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
