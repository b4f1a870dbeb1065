package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

const userLocal = "user"

// AuthMiddleware requires a valid token and loads the user record.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	users := store.NewUserStore(db)
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		user, err := users.Get(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a token is present and
// lets anonymous requests through. Handlers see the absence as a nil user
// (read-only preview mode for free courses).
func OptionalAuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	users := store.NewUserStore(db)
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Next()
		}
		if user, err := users.Get(c.Context(), userID); err == nil {
			c.Locals(userLocal, user)
		}
		return c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and gates on the admin flag.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden - Admin access required",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the signed-in user for the request, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
