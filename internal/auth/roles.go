package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eventology/recruiting-service/internal/domain"
	apperrors "github.com/eventology/recruiting-service/pkg/util"
)

// Authorized is the single authorization predicate: the principal exists and
// holds one of the allowed roles. An empty allowed set means any principal.
func Authorized(principal *Principal, allowed ...domain.Role) bool {
	if principal == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if principal.Role == role {
			return true
		}
	}
	return false
}

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Authorized(principal, allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin gates the admin surface.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}

// RequireSuperAdmin gates owner-only operations.
func RequireSuperAdmin() fiber.Handler {
	return RequireRole(domain.RoleSuperAdmin)
}
