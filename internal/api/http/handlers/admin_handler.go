package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventology/recruiting-service/internal/api/dto"
	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/service"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// AdminHandler exposes the role-gated dashboard endpoints. The auth and role
// middlewares run before any of these, so every store access below is
// already authorized.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListApplications handles GET /admin/applications.
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.admin.ListApplications(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewApplicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateApplicationStatus handles PATCH /admin/applications/:id/status.
func (h *AdminHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.admin.UpdateApplicationStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// ListInquiries handles GET /admin/inquiries.
func (h *AdminHandler) ListInquiries(c *fiber.Ctx) error {
	inquiries, err := h.admin.ListInquiries(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		items = append(items, dto.NewInquiryResponse(&inquiries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateInquiryStatus handles PATCH /admin/inquiries/:id/status.
func (h *AdminHandler) UpdateInquiryStatus(c *fiber.Ctx) error {
	var req dto.UpdateInquiryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	inquiry, err := h.admin.UpdateInquiryStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInquiryResponse(inquiry)})
}

// DeleteInquiry handles DELETE /admin/inquiries/:id.
func (h *AdminHandler) DeleteInquiry(c *fiber.Ctx) error {
	if err := h.admin.DeleteInquiry(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// PromoteUser handles POST /admin/users/:id/promote.
func (h *AdminHandler) PromoteUser(c *fiber.Ctx) error {
	user, err := h.admin.UpdateUserRole(c.Context(), c.Params("id"), domain.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// DemoteUser handles POST /admin/users/:id/demote.
func (h *AdminHandler) DemoteUser(c *fiber.Ctx) error {
	user, err := h.admin.UpdateUserRole(c.Context(), c.Params("id"), domain.RoleUser)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.admin.GetSettings(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}

// UpdateSettings handles PATCH /admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.SettingsPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	settings, err := h.admin.UpdateSettings(c.Context(), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}

// Wipe handles POST /admin/wipe.
func (h *AdminHandler) Wipe(c *fiber.Ctx) error {
	if err := h.admin.Wipe(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "store wiped"}})
}
