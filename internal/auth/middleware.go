package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the subject/roles pair resolved from a valid token. It lives
// for one request only and is rebuilt from the token on every call.
type Identity struct {
	Subject string
	Roles   []domain.Role
}

// IsAdmin reports whether the identity carries the admin tag.
func (i *Identity) IsAdmin() bool {
	return i != nil && domain.HasRole(i.Roles, domain.RoleAdmin)
}

// Middleware validates bearer tokens and attaches the caller identity to the
// request. Requests without a bearer token pass through anonymously; some
// endpoints are intentionally public and decide for themselves.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the request gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle runs once per inbound request, before any handler logic.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return c.Status(http.StatusUnauthorized).SendString("Token has expired. Please log in again.")
		}
		return c.Status(http.StatusUnauthorized).SendString("Invalid token.")
	}

	c.Locals(identityKey, &Identity{Subject: claims.Username, Roles: claims.Roles})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
