package auth

import (
	"log"
	"strings"

	helper "attendku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

// HasRole: guard eksplisit, role selalu dari parameter (bukan state global).
func HasRole(role string, allowed ...string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// OnlyRoles: 401 kalau role tidak ada di Locals, 403 dengan pesan custom kalau tidak diizinkan.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !HasRole(role, roles...) {
			log.Printf("[WARN] role %s ditolak di %s %s", role, c.Method(), c.Path())
			return helper.JsonError(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}
