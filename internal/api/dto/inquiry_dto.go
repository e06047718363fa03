package dto

import (
	"time"

	"github.com/eventology/recruiting-service/internal/domain"
)

// SubmitInquiryRequest payload.
type SubmitInquiryRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UpdateInquiryStatusRequest payload.
type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}

// InquiryResponse response.
type InquiryResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Company   string               `json:"company,omitempty"`
	Email     string               `json:"email"`
	Message   string               `json:"message"`
	Status    domain.InquiryStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewInquiryResponse maps a domain inquiry.
func NewInquiryResponse(inquiry *domain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Company:   inquiry.Company,
		Email:     inquiry.Email,
		Message:   inquiry.Message,
		Status:    inquiry.Status,
		CreatedAt: inquiry.CreatedAt,
	}
}
