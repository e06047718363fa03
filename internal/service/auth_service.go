package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventology/recruiting-service/internal/auth"
	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/repository"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// AuthService coordinates registration, verification and login flows.
type AuthService struct {
	users      repository.UserRepository
	pending    repository.VerificationRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	owner      config.OwnerConfig
	bcryptCost int
	pendingTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	VerificationRepo repository.VerificationRepository
	Dispatcher       events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		pending:    deps.VerificationRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		owner:      cfg.Owner,
		bcryptCost: cfg.Auth.BcryptCost,
		pendingTTL: cfg.Auth.VerificationTTL(),
	}
}

// Register stores a pending registration and emits its one-time code. The
// account only materializes once the code is confirmed.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return apperrors.NewValidationError("name, email and password are required", nil)
	}
	if len(password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if email == strings.ToLower(s.owner.Email) {
		return apperrors.NewConflict("email already registered", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	pending := repository.PendingRegistration{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Code:         code,
	}
	if err := s.pending.Put(ctx, pending, s.pendingTTL); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		Email: email,
		Name:  name,
		Code:  code,
	})
	return nil
}

// Verify confirms a one-time code and creates the verified account.
func (s *AuthService) Verify(ctx context.Context, email, code string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and code are required", nil)
	}

	pending, err := s.pending.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewValidationError("no pending registration found", nil)
		}
		return nil, "", time.Time{}, err
	}
	if pending.Code != code {
		// Pending state stays untouched so the caller can retry.
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid verification code", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         pending.Name,
		Email:        email,
		PasswordHash: pending.PasswordHash,
		Role:         domain.RoleUser,
		Verified:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = s.pending.Delete(ctx, email)

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an identifier/password pair. The configured owner pair
// always succeeds regardless of store contents.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("identifier and password are required", nil)
	}

	if identifier == strings.ToLower(s.owner.Email) && password == s.owner.Password {
		owner := &domain.User{
			ID:       auth.OwnerSubjectID,
			Name:     s.owner.Name,
			Email:    s.owner.Email,
			Role:     domain.RoleSuperAdmin,
			Verified: true,
		}
		token, exp, err := s.tokenMgr.GenerateToken(auth.OwnerSubjectID, domain.RoleSuperAdmin)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		return owner, token, exp, nil
	}

	user, err := s.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Verified {
		return nil, "", time.Time{}, apperrors.NewForbidden("account not verified")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout currently no-ops for stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// EnsureOwner seeds the owner account into the store so it shows up in admin
// listings. Login does not depend on this record existing.
func (s *AuthService) EnsureOwner(ctx context.Context) error {
	if _, err := s.users.GetByEmail(ctx, strings.ToLower(s.owner.Email)); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(s.owner.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	owner := &domain.User{
		Name:         s.owner.Name,
		Email:        strings.ToLower(s.owner.Email),
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Verified:     true,
	}
	return s.users.Create(ctx, owner)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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

// generateCode returns a 6-digit one-time code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
