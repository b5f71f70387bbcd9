package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/auth"
)

const (
	JWTCookieName = "JWT"
	userIDKey     = "user_id"
)

// AuthMiddleware accepts a bearer token from the Authorization header or the
// JWT cookie and stores the caller's user id in the request locals.
func AuthMiddleware(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		var tokenStr string

		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimSpace(authHeader[len("Bearer "):])
		} else {
			tokenStr = c.Cookies(JWTCookieName)
		}

		if tokenStr == "" {
			return apperr.Authentication("You are not authorized!")
		}

		identity, err := tokens.Parse(tokenStr)
		if err != nil {
			return apperr.Authentication("Invalid token")
		}

		c.Locals(userIDKey, identity.UserID)
		return c.Next()
	}
}

// CheckUserLoggedIn returns the user id stored by AuthMiddleware.
func CheckUserLoggedIn(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(userIDKey).(uint)
	if !ok || userID == 0 {
		return 0, apperr.Authentication("Authentication required")
	}
	return userID, nil
}
