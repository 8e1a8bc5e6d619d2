package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// Capability is the access rule an operation demands.
type Capability int

const (
	CapabilityPublic Capability = iota
	CapabilityAuthenticated
	CapabilitySelfOrAdmin
	CapabilityAdminOnly
)

// Authorize decides whether the identity may perform an operation on a
// resource owned by resourceOwner. It is a pure function of its inputs;
// handlers must call it before any mutating persistence call.
func Authorize(identity *Identity, resourceOwner string, capability Capability) bool {
	switch capability {
	case CapabilityPublic:
		return true
	case CapabilityAuthenticated:
		return identity != nil
	case CapabilitySelfOrAdmin:
		return identity != nil && (identity.Subject == resourceOwner || identity.IsAdmin())
	case CapabilityAdminOnly:
		return identity != nil && identity.IsAdmin()
	default:
		return false
	}
}

// RequireAuthenticated guards routes that need any valid identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin guards routes reserved for administrators.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !identity.IsAdmin() {
			return apperrors.NewForbidden("Unauthorized")
		}
		return c.Next()
	}
}
