package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
)

// SessionAuthMiddleware resolves the Bearer session token against the
// sessions table and attaches the owning user id to the request context.
// Every pick, stats and settlement route sits behind this gate.
func SessionAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Printf("🚫 [AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "empty session token",
			})
		}

		var session models.Session
		if err := db.Where("token = ?", token).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("🚫 [AUTH] Invalid session token for %s", c.Path())
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid or expired session",
				})
			}
			log.Printf("❌ [AUTH] Session lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals("user_id", session.UserID)
		return c.Next()
	}
}
