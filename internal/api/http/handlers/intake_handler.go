package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/eventology/recruiting-service/internal/api/dto"
	"github.com/eventology/recruiting-service/internal/service"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// IntakeHandler exposes the unauthenticated submission endpoints.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intakeService}
}

// SubmitApplication handles POST /applications. Field-level validation stays
// with the client; only the payload shape is checked here.
func (h *IntakeHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.intake.SubmitApplication(c.Context(), service.ApplicationInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Type:       req.Type,
		University: req.University,
		Age:        req.Age,
		Motivation: req.Motivation,
		Specialty:  req.Specialty,
		Portfolio:  req.Portfolio,
		Experience: req.Experience,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// SubmitInquiry handles POST /inquiries.
func (h *IntakeHandler) SubmitInquiry(c *fiber.Ctx) error {
	var req dto.SubmitInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	inquiry, err := h.intake.SubmitInquiry(c.Context(), service.InquiryInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInquiryResponse(inquiry)})
}

// GetSettings handles GET /settings: the public surface reads the forms flag
// before rendering submission forms.
func (h *IntakeHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.intake.Settings(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}
