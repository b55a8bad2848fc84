package middleware

import (
	"errors"
	"log"
	"strings"

	"garage/internal/models"
	"garage/internal/services"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// AuthRequired is a Fiber middleware that checks for a valid bearer token
// and resolves it to a live user record. The resolved user is stored in the
// request context for subsequent handlers. A valid token whose subject has
// since been deleted is rejected. An active/disabled account check would
// slot in here once the model carries such a flag.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.ResolveIdentity(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				return unauthorized(c, "Invalid or expired token")
			case errors.Is(err, services.ErrUserNotFound):
				return unauthorized(c, "User not found")
			default:
				log.Printf("Identity resolution failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not resolve identity",
				})
			}
		}

		c.Locals(currentUserKey, user)

		return c.Next()
	}
}

// AdminRequired is a Fiber middleware that rejects non-admin users. It must
// run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Authentication required")
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Not an administrator",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
