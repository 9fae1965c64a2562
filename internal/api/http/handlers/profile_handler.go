package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// ProfileHandler exposes profile self-service endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profileService}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.profiles.GetProfile(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	errs := fieldErrors{}
	if req.Name != nil && *req.Name == "" {
		errs.add("name", "name is required")
	}
	if req.Email != nil && !validEmail(*req.Email) {
		errs.add("email", "please include a valid email")
	}
	if req.Phone != nil && *req.Phone != "" && !validPhone(*req.Phone) {
		errs.add("phone", "please provide a valid phone number")
	}
	if err := errs.toError(); err != nil {
		return err
	}

	user, err := h.profiles.UpdateProfile(c.Context(), principal.UserID, service.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdatePhone handles PUT /api/profile/phone.
func (h *ProfileHandler) UpdatePhone(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !validPhone(req.Phone) {
		errs := fieldErrors{}
		errs.add("phone", "please provide a valid phone number")
		return errs.toError()
	}

	user, err := h.profiles.UpdatePhone(c.Context(), principal.UserID, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"msg":  "phone number updated successfully",
		"user": dto.NewUserResponse(user),
	}})
}

// UpdateEmail handles PUT /api/profile/email.
func (h *ProfileHandler) UpdateEmail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !validEmail(req.Email) {
		errs := fieldErrors{}
		errs.add("email", "please include a valid email")
		return errs.toError()
	}

	user, err := h.profiles.UpdateEmail(c.Context(), principal.UserID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"msg":  "email updated successfully",
		"user": dto.NewUserResponse(user),
	}})
}
