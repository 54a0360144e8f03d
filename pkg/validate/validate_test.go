package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,regex=[0-9]"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role" validate:"nullable,in=owner,manager,cashier"`
}

type customerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,digits=10"`
	DOB   string `json:"dob" validate:"nullable,date"`
}

type productInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(registerInput{
		Email:    "clerk@example.com",
		Password: "secret1",
		Role:     "cashier",
	})
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(registerInput{})

	assert.True(t, HasErrors(errs))
	assert.Equal(t, "The email field is required.", errs["email"])
	assert.Contains(t, errs, "password")
}

func TestStructEmail(t *testing.T) {
	errs := Struct(registerInput{Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestStructPasswordRules(t *testing.T) {
	errs := Struct(registerInput{Email: "a@b.com", Password: "short"})
	assert.Equal(t, "The password must be at least 6 characters.", errs["password"])

	errs = Struct(registerInput{Email: "a@b.com", Password: "nodigits"})
	assert.Equal(t, "The password format is invalid.", errs["password"])
}

func TestStructInList(t *testing.T) {
	errs := Struct(registerInput{Email: "a@b.com", Password: "secret1", Role: "intern"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestStructNullableSkips(t *testing.T) {
	errs := Struct(customerInput{Name: "Asha", Phone: "9876543210"})
	assert.Empty(t, errs)
}

func TestStructDigits(t *testing.T) {
	for _, phone := range []string{"12345", "98765432101", "98765abcde"} {
		errs := Struct(customerInput{Name: "Asha", Phone: phone})
		assert.Equal(t, "The phone must be 10 digits.", errs["phone"], "phone %q", phone)
	}
}

func TestStructDate(t *testing.T) {
	errs := Struct(customerInput{Name: "Asha", Phone: "9876543210", DOB: "1990-06-15"})
	assert.Empty(t, errs)

	errs = Struct(customerInput{Name: "Asha", Phone: "9876543210", DOB: "15-06-1990"})
	assert.Equal(t, "The dob is not a valid date.", errs["dob"])
}

func TestStructNumericBounds(t *testing.T) {
	errs := Struct(productInput{Name: "Soap", Price: 0})
	assert.Contains(t, errs, "price")

	errs = Struct(productInput{Name: "Soap", Price: 49.5, Stock: 10})
	assert.Empty(t, errs)
}

func TestStructConfirmed(t *testing.T) {
	type resetInput struct {
		Password             string `json:"password" validate:"required,confirmed"`
		PasswordConfirmation string `json:"password_confirmation"`
	}

	errs := Struct(resetInput{Password: "secret1", PasswordConfirmation: "other"})
	assert.Equal(t, "The password confirmation does not match.", errs["password"])

	errs = Struct(resetInput{Password: "secret1", PasswordConfirmation: "secret1"})
	assert.Empty(t, errs)
}

func TestSplitRulesKeepsInList(t *testing.T) {
	rules := splitRules("required,in=owner,manager,cashier,max=20")
	assert.Equal(t, []string{"required", "in=owner,manager,cashier", "max=20"}, rules)
}
