package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/models"
	"ieltscheck/backend/utils"
)

const currentUserKey = "currentUser"

// AuthMiddleware verifies the bearer token, resolves the user behind it and
// attaches the record to the request context. Rejected requests never reach
// the handler.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromRequest(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.Unauthorized(c, "Unauthorized")
			}
			return utils.InternalServerError(c, "Could not query database")
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient permissions")
	}
}

// RequireAdmin admits ADMIN and SUPER_ADMIN.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
}

// CurrentUser returns the authenticated user attached by AuthMiddleware, or
// nil when the route is unauthenticated.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
