package filedb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return store
}

func TestOpenSeedsDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.FormsEnabled)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateApplicationStampsFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	app := &domain.Application{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Type:   domain.ApplicationTypeBeginner,
		Status: domain.ApplicationStatusPending,
	}
	require.NoError(t, store.CreateApplication(ctx, app))

	assert.NotEmpty(t, app.ID)
	assert.False(t, app.CreatedAt.IsZero())

	got, err := store.GetApplicationByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, got.Status)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestListApplicationsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		app := &domain.Application{Name: name, Email: name + "@example.com", Type: domain.ApplicationTypeBeginner, Status: domain.ApplicationStatusPending}
		require.NoError(t, store.CreateApplication(ctx, app))
		time.Sleep(2 * time.Millisecond)
	}

	list, err := store.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "first", list[2].Name)
}

func TestUpdateApplicationStatusMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.UpdateApplicationStatus(context.Background(), "nope", domain.ApplicationStatusReviewed)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInquiryLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	inq := &domain.Inquiry{Name: "Acme", Company: "Acme Corp", Email: "hr@acme.test", Message: "Need staff", Status: domain.InquiryStatusNew}
	require.NoError(t, store.CreateInquiry(ctx, inq))

	updated, err := store.UpdateInquiryStatus(ctx, inq.ID, domain.InquiryStatusRead)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusRead, updated.Status)

	require.NoError(t, store.DeleteInquiry(ctx, inq.ID))
	assert.ErrorIs(t, store.DeleteInquiry(ctx, inq.ID), repository.ErrNotFound)

	list, err := store.ListInquiries(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserEmailLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := &domain.User{Name: "Sam", Email: "sam@example.com", Role: domain.RoleUser, Verified: true}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDurabilityAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	app := &domain.Application{Name: "Persisted", Email: "p@example.com", Type: domain.ApplicationTypeExpert, Status: domain.ApplicationStatusPending}
	require.NoError(t, store.CreateApplication(ctx, app))
	require.NoError(t, store.SaveSettings(ctx, domain.SystemSettings{FormsEnabled: false}))

	reopened, err := Open(path)
	require.NoError(t, err)

	list, err := reopened.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Persisted", list[0].Name)
	assert.Equal(t, domain.ApplicationTypeExpert, list[0].Type)

	settings, err := reopened.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.FormsEnabled)
}

func TestWipeResetsEverything(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &domain.User{Name: "U", Email: "u@example.com", Role: domain.RoleAdmin}))
	require.NoError(t, store.CreateInquiry(ctx, &domain.Inquiry{Name: "I", Email: "i@example.com", Message: "m", Status: domain.InquiryStatusNew}))
	require.NoError(t, store.SaveSettings(ctx, domain.SystemSettings{FormsEnabled: false}))

	require.NoError(t, store.Wipe(ctx))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.FormsEnabled)
}
