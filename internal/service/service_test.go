package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/repository"
	"github.com/eventology/recruiting-service/internal/repository/filedb"
)

// codeCapture records one-time codes from registration events, standing in
// for the email notification channel.
type codeCapture struct {
	mu      sync.Mutex
	byEmail map[string]string
}

func newCodeCapture(dispatcher events.Dispatcher) *codeCapture {
	c := &codeCapture{byEmail: make(map[string]string)}
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.UserRegisteredPayload); ok {
			c.mu.Lock()
			c.byEmail[payload.Email] = payload.Code
			c.mu.Unlock()
		}
		return nil
	})
	return c
}

func (c *codeCapture) code(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byEmail[email]
}

type fixture struct {
	store  *filedb.Store
	codes  *codeCapture
	auth   *AuthService
	admin  *AdminService
	intake *IntakeService
	cfg    config.Config
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  30,
			VerificationTTLMinutes: 15,
			BcryptCost:             bcrypt.MinCost,
		},
		Owner: config.OwnerConfig{
			Email:    "owner@eventology.test",
			Password: "owner-secret",
			Name:     "Owner",
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := filedb.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	cfg := testConfig()
	dispatcher := events.NewInMemoryDispatcher()
	codes := newCodeCapture(dispatcher)

	authSvc := NewAuthService(cfg, AuthDependencies{
		UserRepo:         store.Users(),
		VerificationRepo: repository.NewMemoryVerificationRepository(),
		Dispatcher:       dispatcher,
	})
	adminSvc := NewAdminService(cfg, AdminDependencies{
		UserRepo:        store.Users(),
		ApplicationRepo: store.Applications(),
		InquiryRepo:     store.Inquiries(),
		SettingsRepo:    store.Settings(),
		MaintenanceRepo: store.Maintenance(),
		Dispatcher:      dispatcher,
		ReseedOwner:     authSvc.EnsureOwner,
	})
	intakeSvc := NewIntakeService(store.Applications(), store.Inquiries(), store.Settings(), dispatcher)

	return &fixture{store: store, codes: codes, auth: authSvc, admin: adminSvc, intake: intakeSvc, cfg: cfg}
}

// registerVerified runs the full registration flow and returns the created user.
func (f *fixture) registerVerified(t *testing.T, name, email, password string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, name, email, password))
	user, _, _, err := f.auth.Verify(ctx, email, f.codes.code(email))
	require.NoError(t, err)
	return user.ID
}
