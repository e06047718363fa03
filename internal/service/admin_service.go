package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/repository"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// AdminService performs role-gated operations against the record store.
// Authorization happens at the HTTP boundary before these methods run.
type AdminService struct {
	users        repository.UserRepository
	applications repository.ApplicationRepository
	inquiries    repository.InquiryRepository
	settings     repository.SettingsRepository
	maintenance  repository.MaintenanceRepository
	dispatcher   events.Dispatcher
	owner        config.OwnerConfig
	reseedOwner  func(context.Context) error
}

// AdminDependencies encapsulates requirements for the admin service.
type AdminDependencies struct {
	UserRepo        repository.UserRepository
	ApplicationRepo repository.ApplicationRepository
	InquiryRepo     repository.InquiryRepository
	SettingsRepo    repository.SettingsRepository
	MaintenanceRepo repository.MaintenanceRepository
	Dispatcher      events.Dispatcher
	ReseedOwner     func(context.Context) error
}

// NewAdminService builds the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		users:        deps.UserRepo,
		applications: deps.ApplicationRepo,
		inquiries:    deps.InquiryRepo,
		settings:     deps.SettingsRepo,
		maintenance:  deps.MaintenanceRepo,
		dispatcher:   deps.Dispatcher,
		owner:        cfg.Owner,
		reseedOwner:  deps.ReseedOwner,
	}
}

// ListApplications returns all applications, newest first.
func (s *AdminService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	return s.applications.List(ctx)
}

// UpdateApplicationStatus moves an application to any state in the fixed set.
func (s *AdminService) UpdateApplicationStatus(ctx context.Context, id, statusStr string) (*domain.Application, error) {
	status, ok := domain.ParseApplicationStatus(statusStr)
	if !ok {
		return nil, apperrors.NewValidationError("invalid application status", map[string]any{"status": statusStr})
	}

	current, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return nil, err
	}

	updated, err := s.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return nil, err
	}

	s.publish(ctx, events.EventApplicationStatusChanged, events.ApplicationStatusChangedPayload{
		ApplicationID: id,
		OldStatus:     current.Status,
		NewStatus:     status,
	})
	return updated, nil
}

// ListInquiries returns all inquiries, newest first.
func (s *AdminService) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	return s.inquiries.List(ctx)
}

// UpdateInquiryStatus triages an inquiry.
func (s *AdminService) UpdateInquiryStatus(ctx context.Context, id, statusStr string) (*domain.Inquiry, error) {
	status, ok := domain.ParseInquiryStatus(statusStr)
	if !ok {
		return nil, apperrors.NewValidationError("invalid inquiry status", map[string]any{"status": statusStr})
	}

	inquiry, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("inquiry", map[string]any{"id": id})
		}
		return nil, err
	}
	return inquiry, nil
}

// DeleteInquiry removes an inquiry permanently.
func (s *AdminService) DeleteInquiry(ctx context.Context, id string) error {
	if err := s.inquiries.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("inquiry", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ListUsers returns all accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUserRole changes a user's role to ADMIN or USER. The owner's role is
// immutable.
func (s *AdminService) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, apperrors.NewValidationError("role must be ADMIN or USER", map[string]any{"role": role})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	if user.Role == domain.RoleSuperAdmin {
		return nil, apperrors.NewForbidden("the owner role cannot be changed")
	}
	if user.Role == role {
		return user, nil
	}

	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRoleChanged, events.UserRoleChangedPayload{
		UserID:  user.ID,
		OldRole: oldRole,
		NewRole: role,
	})
	return user, nil
}

// GetSettings returns the current settings.
func (s *AdminService) GetSettings(ctx context.Context) (domain.SystemSettings, error) {
	return s.settings.Get(ctx)
}

// UpdateSettings merges a partial patch onto the current settings, persists
// and returns the result.
func (s *AdminService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.SystemSettings, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SystemSettings{}, err
	}
	merged := patch.Apply(current)
	if err := s.settings.Save(ctx, merged); err != nil {
		return domain.SystemSettings{}, err
	}

	s.publish(ctx, events.EventSettingsChanged, events.SettingsChangedPayload{
		FormsEnabled: merged.FormsEnabled,
	})
	return merged, nil
}

// Wipe resets the store to its seed state, then re-seeds the owner account.
func (s *AdminService) Wipe(ctx context.Context) error {
	if err := s.maintenance.Wipe(ctx); err != nil {
		return err
	}
	if s.reseedOwner != nil {
		return s.reseedOwner(ctx)
	}
	return nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
