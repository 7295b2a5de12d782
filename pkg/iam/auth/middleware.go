package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	tokens TokenService
}

func NewMiddleware(tokens TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the bearer token and stores the Principal in the context.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		principal, err := m.tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(principalKey, *principal)
		return c.Next()
	}
}

// RequireRole rejects principals outside the given roles. Must run after Authenticate.
func (m *Middleware) RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return ErrMissingToken()
		}
		if !principal.Is(roles...) {
			return ErrRoleRequired().
				WithDetail("role", principal.Role).
				WithDetail("allowed", roles)
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated caller from the context.
func GetPrincipal(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}
