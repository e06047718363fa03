package dto

import (
	"time"

	"github.com/eventology/recruiting-service/internal/domain"
)

// SubmitApplicationRequest payload. Both form tracks share one shape; the
// unused track's fields arrive empty.
type SubmitApplicationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Type       string `json:"type"`
	University string `json:"university"`
	Age        string `json:"age"`
	Motivation string `json:"motivation"`
	Specialty  string `json:"specialty"`
	Portfolio  string `json:"portfolio"`
	Experience string `json:"experience"`
}

// UpdateApplicationStatusRequest payload.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// ApplicationResponse response.
type ApplicationResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Email      string                   `json:"email"`
	Phone      string                   `json:"phone,omitempty"`
	Type       domain.ApplicationType   `json:"type"`
	University string                   `json:"university,omitempty"`
	Age        string                   `json:"age,omitempty"`
	Motivation string                   `json:"motivation,omitempty"`
	Specialty  string                   `json:"specialty,omitempty"`
	Portfolio  string                   `json:"portfolio,omitempty"`
	Experience string                   `json:"experience,omitempty"`
	Status     domain.ApplicationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:         app.ID,
		Name:       app.Name,
		Email:      app.Email,
		Phone:      app.Phone,
		Type:       app.Type,
		University: app.University,
		Age:        app.Age,
		Motivation: app.Motivation,
		Specialty:  app.Specialty,
		Portfolio:  app.Portfolio,
		Experience: app.Experience,
		Status:     app.Status,
		CreatedAt:  app.CreatedAt,
	}
}
