package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/repository"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// IntakeService accepts public form submissions. Field-level validation is
// deliberately left to the client; the only server-side gate is the forms
// flag for applications.
type IntakeService struct {
	applications repository.ApplicationRepository
	inquiries    repository.InquiryRepository
	settings     repository.SettingsRepository
	dispatcher   events.Dispatcher
}

// NewIntakeService builds the service.
func NewIntakeService(
	applications repository.ApplicationRepository,
	inquiries repository.InquiryRepository,
	settings repository.SettingsRepository,
	dispatcher events.Dispatcher,
) *IntakeService {
	return &IntakeService{
		applications: applications,
		inquiries:    inquiries,
		settings:     settings,
		dispatcher:   dispatcher,
	}
}

// ApplicationInput carries an unauthenticated application submission.
type ApplicationInput struct {
	Name       string
	Email      string
	Phone      string
	Type       string
	University string
	Age        string
	Motivation string
	Specialty  string
	Portfolio  string
	Experience string
}

// SubmitApplication stores a new candidacy while the forms flag allows it.
// The store stamps id, timestamp and the initial pending status.
func (s *IntakeService) SubmitApplication(ctx context.Context, input ApplicationInput) (*domain.Application, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.FormsEnabled {
		return nil, apperrors.NewForbidden("applications are currently closed")
	}

	appType := domain.ApplicationTypeBeginner
	if domain.ApplicationType(input.Type) == domain.ApplicationTypeExpert {
		appType = domain.ApplicationTypeExpert
	}

	app := &domain.Application{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Type:       appType,
		University: input.University,
		Age:        input.Age,
		Motivation: input.Motivation,
		Specialty:  input.Specialty,
		Portfolio:  input.Portfolio,
		Experience: input.Experience,
		Status:     domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationReceived, events.ApplicationReceivedPayload{
		ApplicationID: app.ID,
		Name:          app.Name,
		Email:         app.Email,
		Type:          app.Type,
	})
	return app, nil
}

// InquiryInput carries a contact-form submission.
type InquiryInput struct {
	Name    string
	Company string
	Email   string
	Message string
}

// SubmitInquiry stores a new contact-form submission. Inquiries are not
// gated by the forms flag.
func (s *IntakeService) SubmitInquiry(ctx context.Context, input InquiryInput) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Message: input.Message,
		Status:  domain.InquiryStatusNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventInquiryReceived, events.InquiryReceivedPayload{
		InquiryID: inquiry.ID,
		Name:      inquiry.Name,
		Company:   inquiry.Company,
		Email:     inquiry.Email,
	})
	return inquiry, nil
}

// Settings returns the current flag state for the public surface.
func (s *IntakeService) Settings(ctx context.Context) (domain.SystemSettings, error) {
	return s.settings.Get(ctx)
}

func (s *IntakeService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
