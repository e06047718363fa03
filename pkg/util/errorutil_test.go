package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewConflict("email already registered", map[string]any{"email": "a@b.c"})

	domainErr := ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "a@b.c", domainErr.Details["email"])
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("connection refused"))
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	// Provider details stay out of the message.
	assert.Equal(t, "internal server error", domainErr.Message)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestErrorKindsCarryStatuses(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:   NewValidationError("bad", nil),
		http.StatusUnauthorized: NewUnauthorized("who are you"),
		http.StatusForbidden:    NewForbidden("not yours"),
		http.StatusNotFound:     NewNotFound("user", nil),
		http.StatusConflict:     NewConflict("dup", nil),
	}
	for status, err := range cases {
		assert.Equal(t, status, ToDomainError(err).HTTPStatus)
	}
}
