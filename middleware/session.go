// Package middleware applies the session envelope: decode the cookie into a
// request-scoped principal, then gate user- and admin-only route groups.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"shipment-tracker/auth"
)

const principalKey = "principal"

// LoadSession decodes the session cookie and stores the resulting principal
// in the request locals. It never rejects: a missing or invalid cookie just
// leaves the request anonymous.
func LoadSession(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p := auth.SessionFromCookieHeader(c.Get(fiber.HeaderCookie), secret); p != nil {
			c.Locals(principalKey, p)
		}
		return c.Next()
	}
}

// PrincipalFrom returns the caller's principal, or nil for anonymous.
func PrincipalFrom(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(principalKey).(*auth.Principal)
	return p
}

// RequireUser rejects anonymous callers.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFrom(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// RequireAdmin rejects callers without the admin flag. It assumes
// RequireUser already ran.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
		if !p.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}
