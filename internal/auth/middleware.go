package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/domain"
	"github.com/eventology/recruiting-service/internal/repository"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, resolved once at the
// boundary and threaded through the request context.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	owner  config.OwnerConfig
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, owner config.OwnerConfig) *Middleware {
	return &Middleware{tokens: tokens, users: users, owner: owner}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// The owner principal exists independently of the store.
	if claims.SubjectID == OwnerSubjectID {
		c.Locals(principalKey, &Principal{
			User: &domain.User{
				ID:       OwnerSubjectID,
				Name:     m.owner.Name,
				Email:    m.owner.Email,
				Role:     domain.RoleSuperAdmin,
				Verified: true,
			},
			Role: domain.RoleSuperAdmin,
		})
		return c.Next()
	}

	user, err := m.users.GetByID(c.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
