package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly allows only users whose token carries the ADMIN role. Must run
// after JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok || role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}
	return c.Next()
}
