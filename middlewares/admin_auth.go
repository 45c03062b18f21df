package middlewares

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth gates the admin routes on a shared secret passed as a query
// parameter or body field, matching the admin console's request shape.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := os.Getenv("ADMIN_SECRET")
		if expected == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access is not configured",
			})
		}

		secret := c.Query("secret")
		if secret == "" {
			var body struct {
				Secret string `json:"secret"`
			}
			if err := c.BodyParser(&body); err == nil {
				secret = body.Secret
			}
		}

		if subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}

		return c.Next()
	}
}
