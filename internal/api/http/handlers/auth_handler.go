package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// AuthHandler exposes login, current-user and password endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	errs := fieldErrors{}
	if !validEmail(req.Email) {
		errs.add("email", "please include a valid email")
	}
	if req.Password == "" {
		errs.add("password", "password is required")
	}
	if err := errs.toError(); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Current handles GET /api/auth.
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.auth.GetCurrentUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	errs := fieldErrors{}
	if req.CurrentPassword == "" {
		errs.add("currentPassword", "current password is required")
	}
	if len(req.NewPassword) < minPasswordLength {
		errs.add("newPassword", "please enter a new password with 6 or more characters")
	}
	if err := errs.toError(); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"msg": "password updated successfully"}})
}
