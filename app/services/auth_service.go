package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/auth"
	"github.com/spectraretail/spectra-pos/pkg/logger"
)

// StaffStore is the persistence surface the auth service needs.
type StaffStore interface {
	FindByEmail(email string) (*models.Staff, error)
	FindByID(id uint) (*models.Staff, error)
	Create(staff *models.Staff) error
	UpdatePassword(id uint, hash string) error
	All() ([]models.Staff, error)
}

// AuthService handles staff registration and sign-in.
type AuthService struct {
	staff StaffStore
}

func NewAuthService(staff StaffStore) *AuthService {
	return &AuthService{staff: staff}
}

// RegisterInput carries a new staff account. Role defaults to cashier.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,regex=[0-9]"`
	Role     string `json:"role" validate:"nullable,in=owner,manager,cashier"`
}

// Register creates a staff account with a bcrypt password hash.
func (s *AuthService) Register(in RegisterInput) (*models.Staff, error) {
	if _, err := s.staff.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleCashier
	}

	staff := &models.Staff{Email: in.Email, Password: hash, Role: role}
	if err := s.staff.Create(staff); err != nil {
		return nil, err
	}

	logger.Info("staff registered", "staff_id", staff.ID, "role", staff.Role)
	return staff, nil
}

// Authenticate verifies credentials and mints a JWT. Unknown email and wrong
// password come back as the same error; detail stays in the logs.
func (s *AuthService) Authenticate(email, password string) (*models.Staff, string, error) {
	staff, err := s.staff.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("login for unknown email", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(staff.Password, password) {
		logger.Warn("login with wrong password", "staff_id", staff.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, "", err
	}

	return staff, token, nil
}

// ResetPassword replaces the password for an existing account.
func (s *AuthService) ResetPassword(email, newPassword string) error {
	staff, err := s.staff.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.staff.UpdatePassword(staff.ID, hash); err != nil {
		return err
	}

	logger.Info("password reset", "staff_id", staff.ID)
	return nil
}

// Staff lists every account, for the owner's staff screen.
func (s *AuthService) Staff() ([]models.Staff, error) {
	return s.staff.All()
}
