package domain

import "time"

// InquiryStatus enumerates triage states for contact-form submissions.
type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusRead     InquiryStatus = "read"
	InquiryStatusArchived InquiryStatus = "archived"
)

// ParseInquiryStatus validates a status string.
func ParseInquiryStatus(s string) (InquiryStatus, bool) {
	switch InquiryStatus(s) {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusArchived:
		return InquiryStatus(s), true
	}
	return "", false
}

// Inquiry is a contact-form submission.
type Inquiry struct {
	ID        string
	Name      string
	Company   string
	Email     string
	Message   string
	Status    InquiryStatus
	CreatedAt time.Time
}
