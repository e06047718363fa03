package events

import (
	"time"

	"github.com/eventology/recruiting-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationReceived      EventType = "application_received"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventInquiryReceived          EventType = "inquiry_received"
	EventUserRegistered           EventType = "user_registered"
	EventUserRoleChanged          EventType = "user_role_changed"
	EventSettingsChanged          EventType = "settings_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationReceivedPayload payload.
type ApplicationReceivedPayload struct {
	ApplicationID string                 `json:"application_id"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Type          domain.ApplicationType `json:"type"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"application_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}

// InquiryReceivedPayload payload.
type InquiryReceivedPayload struct {
	InquiryID string `json:"inquiry_id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email"`
}

// UserRegisteredPayload carries the one-time code so the notification stub
// can deliver it.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// SettingsChangedPayload payload.
type SettingsChangedPayload struct {
	FormsEnabled bool `json:"forms_enabled"`
}
