package filedb

import (
	"context"

	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/repository"
)

// The adapters below expose the Store through the repository interfaces so it
// slots in wherever the Postgres implementations do.

type users struct{ s *Store }

// Users returns the store as a repository.UserRepository.
func (s *Store) Users() repository.UserRepository { return users{s: s} }

func (r users) Create(ctx context.Context, user *domain.User) error { return r.s.CreateUser(ctx, user) }
func (r users) Update(ctx context.Context, user *domain.User) error { return r.s.UpdateUser(ctx, user) }
func (r users) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.s.GetUserByID(ctx, id)
}
func (r users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.s.GetUserByEmail(ctx, email)
}
func (r users) List(ctx context.Context) ([]domain.User, error) { return r.s.ListUsers(ctx) }

type applications struct{ s *Store }

// Applications returns the store as a repository.ApplicationRepository.
func (s *Store) Applications() repository.ApplicationRepository { return applications{s: s} }

func (r applications) Create(ctx context.Context, app *domain.Application) error {
	return r.s.CreateApplication(ctx, app)
}
func (r applications) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	return r.s.UpdateApplicationStatus(ctx, id, status)
}
func (r applications) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return r.s.GetApplicationByID(ctx, id)
}
func (r applications) List(ctx context.Context) ([]domain.Application, error) {
	return r.s.ListApplications(ctx)
}

type inquiries struct{ s *Store }

// Inquiries returns the store as a repository.InquiryRepository.
func (s *Store) Inquiries() repository.InquiryRepository { return inquiries{s: s} }

func (r inquiries) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.s.CreateInquiry(ctx, inquiry)
}
func (r inquiries) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	return r.s.UpdateInquiryStatus(ctx, id, status)
}
func (r inquiries) Delete(ctx context.Context, id string) error { return r.s.DeleteInquiry(ctx, id) }
func (r inquiries) List(ctx context.Context) ([]domain.Inquiry, error) {
	return r.s.ListInquiries(ctx)
}

type settings struct{ s *Store }

// Settings returns the store as a repository.SettingsRepository.
func (s *Store) Settings() repository.SettingsRepository { return settings{s: s} }

func (r settings) Get(ctx context.Context) (domain.SystemSettings, error) {
	return r.s.GetSettings(ctx)
}
func (r settings) Save(ctx context.Context, v domain.SystemSettings) error {
	return r.s.SaveSettings(ctx, v)
}

// Maintenance returns the store as a repository.MaintenanceRepository.
func (s *Store) Maintenance() repository.MaintenanceRepository { return s }
