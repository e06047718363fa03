// Package filedb implements the record store interfaces on top of a single
// JSON file. Writes rewrite the whole file synchronously, so every mutation
// is durable before the call returns.
package filedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/repository"
)

type fileData struct {
	Users        []userRecord        `json:"users"`
	Applications []applicationRecord `json:"applications"`
	Inquiries    []inquiryRecord     `json:"inquiries"`
	Settings     settingsRecord      `json:"settings"`
}

type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type applicationRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Type       string    `json:"type"`
	University string    `json:"university,omitempty"`
	Age        string    `json:"age,omitempty"`
	Motivation string    `json:"motivation,omitempty"`
	Specialty  string    `json:"specialty,omitempty"`
	Portfolio  string    `json:"portfolio,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type inquiryRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type settingsRecord struct {
	FormsEnabled bool `json:"forms_enabled"`
}

// Store is a JSON-file record store. A single mutex serializes all access;
// write volume is a handful of admins and public form submissions.
type Store struct {
	mu   sync.Mutex
	path string
	data fileData
}

// Open loads (or creates) the store file at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.data = seedData()
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}
	return s, nil
}

func seedData() fileData {
	return fileData{
		Users:        []userRecord{},
		Applications: []applicationRecord{},
		Inquiries:    []inquiryRecord{},
		Settings:     settingsRecord{FormsEnabled: true},
	}
}

// flushLocked writes the whole dataset back to disk. Callers hold s.mu.
func (s *Store) flushLocked() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o644)
}

// Wipe implements repository.MaintenanceRepository.
func (s *Store) Wipe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = seedData()
	return s.flushLocked()
}

// --- users ---

// CreateUser implements repository.UserRepository.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.data.Users = append(s.data.Users, toUserRecord(user))
	return s.flushLocked()
}

// UpdateUser implements repository.UserRepository.
func (s *Store) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Users {
		if s.data.Users[i].ID == user.ID {
			user.UpdatedAt = time.Now().UTC()
			rec := toUserRecord(user)
			rec.CreatedAt = s.data.Users[i].CreatedAt
			s.data.Users[i] = rec
			return s.flushLocked()
		}
	}
	return repository.ErrNotFound
}

// GetUserByID implements repository.UserRepository.
func (s *Store) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			return fromUserRecord(s.data.Users[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetUserByEmail implements repository.UserRepository.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Users {
		if s.data.Users[i].Email == email {
			return fromUserRecord(s.data.Users[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListUsers implements repository.UserRepository, newest first.
func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.User, 0, len(s.data.Users))
	for i := range s.data.Users {
		result = append(result, *fromUserRecord(s.data.Users[i]))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- applications ---

// CreateApplication implements repository.ApplicationRepository.
func (s *Store) CreateApplication(_ context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app.ID = uuid.NewString()
	app.CreatedAt = time.Now().UTC()
	s.data.Applications = append(s.data.Applications, toApplicationRecord(app))
	return s.flushLocked()
}

// UpdateApplicationStatus implements repository.ApplicationRepository.
func (s *Store) UpdateApplicationStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Applications {
		if s.data.Applications[i].ID == id {
			s.data.Applications[i].Status = string(status)
			if err := s.flushLocked(); err != nil {
				return nil, err
			}
			return fromApplicationRecord(s.data.Applications[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetApplicationByID implements repository.ApplicationRepository.
func (s *Store) GetApplicationByID(_ context.Context, id string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Applications {
		if s.data.Applications[i].ID == id {
			return fromApplicationRecord(s.data.Applications[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListApplications implements repository.ApplicationRepository, newest first.
func (s *Store) ListApplications(_ context.Context) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Application, 0, len(s.data.Applications))
	for i := range s.data.Applications {
		result = append(result, *fromApplicationRecord(s.data.Applications[i]))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- inquiries ---

// CreateInquiry implements repository.InquiryRepository.
func (s *Store) CreateInquiry(_ context.Context, inquiry *domain.Inquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry.ID = uuid.NewString()
	inquiry.CreatedAt = time.Now().UTC()
	s.data.Inquiries = append(s.data.Inquiries, toInquiryRecord(inquiry))
	return s.flushLocked()
}

// UpdateInquiryStatus implements repository.InquiryRepository.
func (s *Store) UpdateInquiryStatus(_ context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Inquiries {
		if s.data.Inquiries[i].ID == id {
			s.data.Inquiries[i].Status = string(status)
			if err := s.flushLocked(); err != nil {
				return nil, err
			}
			return fromInquiryRecord(s.data.Inquiries[i]), nil
		}
	}
	return nil, repository.ErrNotFound
}

// DeleteInquiry implements repository.InquiryRepository.
func (s *Store) DeleteInquiry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Inquiries {
		if s.data.Inquiries[i].ID == id {
			s.data.Inquiries = append(s.data.Inquiries[:i], s.data.Inquiries[i+1:]...)
			return s.flushLocked()
		}
	}
	return repository.ErrNotFound
}

// ListInquiries implements repository.InquiryRepository, newest first.
func (s *Store) ListInquiries(_ context.Context) ([]domain.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Inquiry, 0, len(s.data.Inquiries))
	for i := range s.data.Inquiries {
		result = append(result, *fromInquiryRecord(s.data.Inquiries[i]))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- settings ---

// GetSettings implements repository.SettingsRepository.
func (s *Store) GetSettings(_ context.Context) (domain.SystemSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SystemSettings{FormsEnabled: s.data.Settings.FormsEnabled}, nil
}

// SaveSettings implements repository.SettingsRepository.
func (s *Store) SaveSettings(_ context.Context, settings domain.SystemSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Settings = settingsRecord{FormsEnabled: settings.FormsEnabled}
	return s.flushLocked()
}

// --- record conversions ---

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Verified:     u.Verified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserRecord(rec userRecord) *domain.User {
	return &domain.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         domain.Role(rec.Role),
		Verified:     rec.Verified,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toApplicationRecord(a *domain.Application) applicationRecord {
	return applicationRecord{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Type:       string(a.Type),
		University: a.University,
		Age:        a.Age,
		Motivation: a.Motivation,
		Specialty:  a.Specialty,
		Portfolio:  a.Portfolio,
		Experience: a.Experience,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
	}
}

func fromApplicationRecord(rec applicationRecord) *domain.Application {
	return &domain.Application{
		ID:         rec.ID,
		Name:       rec.Name,
		Email:      rec.Email,
		Phone:      rec.Phone,
		Type:       domain.ApplicationType(rec.Type),
		University: rec.University,
		Age:        rec.Age,
		Motivation: rec.Motivation,
		Specialty:  rec.Specialty,
		Portfolio:  rec.Portfolio,
		Experience: rec.Experience,
		Status:     domain.ApplicationStatus(rec.Status),
		CreatedAt:  rec.CreatedAt,
	}
}

func toInquiryRecord(q *domain.Inquiry) inquiryRecord {
	return inquiryRecord{
		ID:        q.ID,
		Name:      q.Name,
		Company:   q.Company,
		Email:     q.Email,
		Message:   q.Message,
		Status:    string(q.Status),
		CreatedAt: q.CreatedAt,
	}
}

func fromInquiryRecord(rec inquiryRecord) *domain.Inquiry {
	return &domain.Inquiry{
		ID:        rec.ID,
		Name:      rec.Name,
		Company:   rec.Company,
		Email:     rec.Email,
		Message:   rec.Message,
		Status:    domain.InquiryStatus(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
}
