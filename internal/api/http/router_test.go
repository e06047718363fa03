package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventology/recruiting-service/internal/api/http/handlers"
	"github.com/eventology/recruiting-service/internal/auth"
	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/observability"
	"github.com/eventology/recruiting-service/internal/repository"
	"github.com/eventology/recruiting-service/internal/repository/filedb"
	"github.com/eventology/recruiting-service/internal/service"
)

type testServer struct {
	app     *fiber.App
	cfg     config.Config
	metrics *observability.Metrics
	mu      sync.Mutex
	codes   map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := filedb.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	cfg := config.Config{
		App: config.AppConfig{Name: "recruiting-service", Version: "test"},
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

	ts := &testServer{cfg: cfg, codes: make(map[string]string)}

	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.UserRegisteredPayload); ok {
			ts.mu.Lock()
			ts.codes[payload.Email] = payload.Code
			ts.mu.Unlock()
		}
		return nil
	})

	authSvc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:         store.Users(),
		VerificationRepo: repository.NewMemoryVerificationRepository(),
		Dispatcher:       dispatcher,
	})
	require.NoError(t, authSvc.EnsureOwner(context.Background()))

	intakeSvc := service.NewIntakeService(store.Applications(), store.Inquiries(), store.Settings(), dispatcher)
	adminSvc := service.NewAdminService(cfg, service.AdminDependencies{
		UserRepo:        store.Users(),
		ApplicationRepo: store.Applications(),
		InquiryRepo:     store.Inquiries(),
		SettingsRepo:    store.Settings(),
		MaintenanceRepo: store.Maintenance(),
		Dispatcher:      dispatcher,
		ReseedOwner:     authSvc.EnsureOwner,
	})

	app := fiber.New()
	ts.metrics = observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), ts.metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, nil, nil),
		Auth:           handlers.NewAuthHandler(authSvc),
		Intake:         handlers.NewIntakeHandler(intakeSvc),
		Admin:          handlers.NewAdminHandler(adminSvc),
		AuthMiddleware: auth.NewMiddleware(authSvc.TokenManager(), store.Users(), cfg.Owner),
	})
	ts.app = app
	return ts
}

func (ts *testServer) code(email string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.codes[email]
}

// do issues a JSON request and decodes the JSON body into a generic map.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func (ts *testServer) loginOwner(t *testing.T) string {
	t.Helper()
	status, body := ts.do(t, nethttp.MethodPost, "/auth/login", "", map[string]string{
		"identifier": ts.cfg.Owner.Email,
		"password":   ts.cfg.Owner.Password,
	})
	require.Equal(t, nethttp.StatusOK, status)
	return body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)
}

// registerUser walks a fresh identity through register and verify, returning
// its id and token.
func (ts *testServer) registerUser(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	status, _ := ts.do(t, nethttp.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, nethttp.StatusAccepted, status)

	status, body := ts.do(t, nethttp.MethodPost, "/auth/verify", "", map[string]string{
		"email": email, "code": ts.code(email),
	})
	require.Equal(t, nethttp.StatusCreated, status)

	data := body["data"].(map[string]any)
	id := data["user"].(map[string]any)["id"].(string)
	token := data["auth"].(map[string]any)["token"].(string)
	return id, token
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = ts.do(t, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestApplicationSubmissionVisibleToAdmin(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, nethttp.MethodPost, "/applications", "", map[string]string{
		"name":       "Test Candidate",
		"email":      "test@candidate.com",
		"phone":      "0123456789",
		"type":       "beginner",
		"university": "Test University",
		"age":        "25",
		"motivation": "I want to learn.",
	})
	require.Equal(t, nethttp.StatusCreated, status)

	created := body["data"].(map[string]any)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "beginner", created["type"])
	assert.NotEmpty(t, created["id"])

	token := ts.loginOwner(t)
	status, body = ts.do(t, nethttp.MethodGet, "/admin/applications", token, nil)
	require.Equal(t, nethttp.StatusOK, status)

	list := body["data"].([]any)
	require.Len(t, list, 1)
	item := list[0].(map[string]any)
	assert.Equal(t, "test@candidate.com", item["email"])
	assert.Equal(t, "Test University", item["university"])
	assert.Equal(t, "25", item["age"])
	assert.Equal(t, "pending", item["status"])
}

func TestRoleGatedAccess(t *testing.T) {
	ts := newTestServer(t)

	// Owner logs in with the fixed pair and gets the top role.
	status, body := ts.do(t, nethttp.MethodPost, "/auth/login", "", map[string]string{
		"identifier": ts.cfg.Owner.Email,
		"password":   ts.cfg.Owner.Password,
	})
	require.Equal(t, nethttp.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "SUPER_ADMIN", data["user"].(map[string]any)["role"])
	ownerToken := data["auth"].(map[string]any)["token"].(string)

	status, _ = ts.do(t, nethttp.MethodGet, "/admin/users", ownerToken, nil)
	assert.Equal(t, nethttp.StatusOK, status)

	// A fresh identity starts as USER and is kept out of the admin surface.
	userID, userToken := ts.registerUser(t, "Fresh User", "fresh@example.com", "password1")
	status, body = ts.do(t, nethttp.MethodGet, "/admin/applications", userToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	// No token at all is unauthorized, not forbidden.
	status, _ = ts.do(t, nethttp.MethodGet, "/admin/applications", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	// Promotion takes effect for the existing token since the role is read
	// from the store on every request.
	status, body = ts.do(t, nethttp.MethodPost, "/admin/users/"+userID+"/promote", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ADMIN", body["data"].(map[string]any)["role"])

	status, _ = ts.do(t, nethttp.MethodGet, "/admin/applications", userToken, nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, body = ts.do(t, nethttp.MethodPost, "/admin/users/"+userID+"/demote", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "USER", body["data"].(map[string]any)["role"])
}

func TestFormsFlagGatesApplications(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.loginOwner(t)

	application := map[string]string{
		"name":      "Expert Candidate",
		"email":     "expert@candidate.com",
		"type":      "expert",
		"specialty": "Sound engineering",
	}

	status, body := ts.do(t, nethttp.MethodPatch, "/admin/settings", ownerToken, map[string]bool{"forms_enabled": false})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["forms_enabled"])

	// The public surface sees the flag too.
	status, body = ts.do(t, nethttp.MethodGet, "/settings", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["forms_enabled"])

	status, body = ts.do(t, nethttp.MethodPost, "/applications", "", application)
	assert.Equal(t, nethttp.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	// The rejection stored nothing.
	status, body = ts.do(t, nethttp.MethodGet, "/admin/applications", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Empty(t, body["data"])

	// Inquiries stay open while applications are closed.
	status, _ = ts.do(t, nethttp.MethodPost, "/inquiries", "", map[string]string{
		"name": "Org", "email": "org@example.com", "message": "Hello",
	})
	assert.Equal(t, nethttp.StatusCreated, status)

	status, _ = ts.do(t, nethttp.MethodPatch, "/admin/settings", ownerToken, map[string]bool{"forms_enabled": true})
	require.Equal(t, nethttp.StatusOK, status)

	// The identical submission succeeds once the flag is back on.
	status, _ = ts.do(t, nethttp.MethodPost, "/applications", "", application)
	assert.Equal(t, nethttp.StatusCreated, status)

	status, body = ts.do(t, nethttp.MethodGet, "/admin/applications", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "expert@candidate.com", list[0].(map[string]any)["email"])
}

func TestInquiryTriageOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.loginOwner(t)

	status, body := ts.do(t, nethttp.MethodPost, "/inquiries", "", map[string]string{
		"name": "Acme", "company": "Acme Corp", "email": "hr@acme.test", "message": "Need staff for a gala",
	})
	require.Equal(t, nethttp.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)

	// The listing shows the submission with the field values intact.
	status, body = ts.do(t, nethttp.MethodGet, "/admin/inquiries", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	item := list[0].(map[string]any)
	assert.Equal(t, id, item["id"])
	assert.Equal(t, "Acme", item["name"])
	assert.Equal(t, "Acme Corp", item["company"])
	assert.Equal(t, "hr@acme.test", item["email"])
	assert.Equal(t, "Need staff for a gala", item["message"])
	assert.Equal(t, "new", item["status"])

	status, body = ts.do(t, nethttp.MethodPatch, "/admin/inquiries/"+id+"/status", ownerToken, map[string]string{"status": "read"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "read", body["data"].(map[string]any)["status"])

	status, body = ts.do(t, nethttp.MethodDelete, "/admin/inquiries/"+id, ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["deleted"])

	status, _ = ts.do(t, nethttp.MethodDelete, "/admin/inquiries/"+id, ownerToken, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestWipeRequiresSuperAdmin(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.loginOwner(t)

	userID, userToken := ts.registerUser(t, "Helper", "helper@example.com", "password1")
	status, _ := ts.do(t, nethttp.MethodPost, "/admin/users/"+userID+"/promote", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)

	// A promoted admin still cannot wipe.
	status, _ = ts.do(t, nethttp.MethodPost, "/admin/wipe", userToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, _ = ts.do(t, nethttp.MethodPost, "/admin/wipe", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)

	// Owner access survives the wipe and the store holds only the owner.
	status, body := ts.do(t, nethttp.MethodGet, "/admin/users", ownerToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	list := body["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "SUPER_ADMIN", list[0].(map[string]any)["role"])
}

func TestSettingsUpdateAcceptsPostAndPatch(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.loginOwner(t)

	status, body := ts.do(t, nethttp.MethodPost, "/admin/settings", ownerToken, map[string]bool{"forms_enabled": false})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["forms_enabled"])

	status, body = ts.do(t, nethttp.MethodPatch, "/admin/settings", ownerToken, map[string]bool{"forms_enabled": true})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["forms_enabled"])
}

func TestRequestMetricsRecordErrorStatus(t *testing.T) {
	ts := newTestServer(t)

	status, _ := ts.do(t, nethttp.MethodGet, "/admin/applications", "", nil)
	require.Equal(t, nethttp.StatusUnauthorized, status)

	// The request counter sees the shaped error status, not a premature 200.
	assert.Equal(t, int64(1), ts.metrics.RequestCount("/admin/applications", nethttp.MethodGet, nethttp.StatusUnauthorized))
	assert.Zero(t, ts.metrics.RequestCount("/admin/applications", nethttp.MethodGet, nethttp.StatusOK))
}

func TestInvalidStatusRejected(t *testing.T) {
	ts := newTestServer(t)
	ownerToken := ts.loginOwner(t)

	status, body := ts.do(t, nethttp.MethodPost, "/applications", "", map[string]string{
		"name": "Candidate", "email": "c@example.com", "type": "beginner",
	})
	require.Equal(t, nethttp.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)

	status, body = ts.do(t, nethttp.MethodPatch, "/admin/applications/"+id+"/status", ownerToken, map[string]string{"status": "approved"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])

	status, body = ts.do(t, nethttp.MethodPatch, "/admin/applications/"+id+"/status", ownerToken, map[string]string{"status": "accepted"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "accepted", body["data"].(map[string]any)["status"])
}
