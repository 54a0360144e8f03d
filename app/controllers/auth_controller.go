// Package controllers holds the HTTP handlers. Each controller wraps the
// service it fronts and owns request decoding and response shaping.
package controllers

import (
	"errors"
	"net/http"

	"github.com/spectraretail/spectra-pos/app/services"
	"github.com/spectraretail/spectra-pos/pkg/bind"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/response"
	"github.com/spectraretail/spectra-pos/pkg/session"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates a staff account. Owner-only; the route enforces the
// role.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !bind.JSON(w, r, &in) {
		return
	}

	staff, err := c.auth.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Conflict(w, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	response.Created(w, staff)
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, opens a session, and returns a JWT for API
// clients.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !bind.JSON(w, r, &in) {
		return
	}

	staff, token, err := c.auth.Authenticate(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	if sess := session.FromCtx(r); sess != nil {
		sess.Set("staff_id", staff.ID)
		sess.Set("role", staff.Role)
		if err := sess.Save(w); err != nil {
			logger.WithCtx(r.Context()).Warn("session save failed", "error", err)
		}
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"staff": staff,
	})
}

// Logout invalidates the session.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromCtx(r); sess != nil {
		sess.Invalidate()
		if err := sess.Save(w); err != nil {
			logger.WithCtx(r.Context()).Warn("session invalidate failed", "error", err)
		}
	}
	response.Message(w, "signed out")
}

type forgotInput struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,regex=[0-9],confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// Forgot resets the password for a known email.
func (c *AuthController) Forgot(w http.ResponseWriter, r *http.Request) {
	var in forgotInput
	if !bind.JSON(w, r, &in) {
		return
	}

	if err := c.auth.ResetPassword(in.Email, in.Password); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			response.NotFound(w, "no account for that email")
			return
		}
		logger.WithCtx(r.Context()).Error("password reset failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not reset password")
		return
	}

	response.Message(w, "password updated")
}

// Staff lists every account. Owner-only.
func (c *AuthController) Staff(w http.ResponseWriter, r *http.Request) {
	staff, err := c.auth.Staff()
	if err != nil {
		logger.WithCtx(r.Context()).Error("staff listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not list staff")
		return
	}
	response.Success(w, staff)
}
