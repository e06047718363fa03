package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventology/recruiting-service/internal/auth"
	"github.com/eventology/recruiting-service/internal/domain"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

func TestRegisterVerifyLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "New Member", "member@example.com", "password1"))

	code := f.codes.code("member@example.com")
	require.Len(t, code, 6)

	// No account exists until the code is confirmed.
	users, err := f.store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	user, token, _, err := f.auth.Verify(ctx, "member@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.Verified)

	logged, token, _, err := f.auth.Login(ctx, "member@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)
}

func TestVerifyWrongCodeKeepsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "New Member", "member@example.com", "password1"))

	_, _, _, err := f.auth.Verify(ctx, "member@example.com", "000000")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)

	// The right code still works afterwards.
	_, _, _, err = f.auth.Verify(ctx, "member@example.com", f.codes.code("member@example.com"))
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.auth.Register(ctx, "", "a@b.c", "password1")
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)

	err = f.auth.Register(ctx, "Name", "a@b.c", "short")
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.registerVerified(t, "First", "taken@example.com", "password1")

	err := f.auth.Register(ctx, "Second", "taken@example.com", "password2")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	// The existing account is untouched.
	users, err := f.store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "First", users[0].Name)
}

func TestRegisterOwnerEmailRejected(t *testing.T) {
	f := newFixture(t)

	err := f.auth.Register(context.Background(), "Imposter", f.cfg.Owner.Email, "password1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginOwnerFixedPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Works even with an empty store behind it.
	owner, token, _, err := f.auth.Login(ctx, f.cfg.Owner.Email, f.cfg.Owner.Password)
	require.NoError(t, err)
	assert.Equal(t, auth.OwnerSubjectID, owner.ID)
	assert.Equal(t, domain.RoleSuperAdmin, owner.Role)
	assert.NotEmpty(t, token)

	_, _, _, err = f.auth.Login(ctx, f.cfg.Owner.Email, "wrong-password")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.registerVerified(t, "Member", "member@example.com", "password1")

	_, _, _, err := f.auth.Login(ctx, "member@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)

	_, _, _, err = f.auth.Login(ctx, "ghost@example.com", "password1")
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginUnverifiedForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("password1", f.cfg.Auth.BcryptCost)
	require.NoError(t, err)
	require.NoError(t, f.store.CreateUser(ctx, &domain.User{
		Name:         "Unverified",
		Email:        "pending@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Verified:     false,
	}))

	_, _, _, err = f.auth.Login(ctx, "pending@example.com", "password1")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
}

func TestEnsureOwnerIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.EnsureOwner(ctx))
	require.NoError(t, f.auth.EnsureOwner(ctx))

	users, err := f.store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleSuperAdmin, users[0].Role)
	assert.Equal(t, f.cfg.Owner.Email, users[0].Email)
}
