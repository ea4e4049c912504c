package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/auth"
	"uwaveapi/internal/model"
	"uwaveapi/internal/service"
)

// UserLocalKey holds the authenticated *model.User.
const UserLocalKey = "user"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Authenticate loads the user owning the request token, if any. Requests without
// a token continue anonymously; a bad token or a banned user ends the request.
func Authenticate(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractToken(c.Query("token"), c.Get(fiber.HeaderAuthorization), c.Cookies(auth.CookieName))
		if token == "" {
			return c.Next()
		}

		u, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			var svcErr *service.Error
			if !errors.As(err, &svcErr) {
				return err
			}
			if errors.Is(err, service.ErrForbidden) {
				return fiber.NewError(fiber.StatusForbidden, svcErr.Message)
			}
			return fiber.NewError(fiber.StatusBadRequest, svcErr.Message)
		}
		c.Locals(UserLocalKey, u)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "you must be logged in to do this")
		}
		return c.Next()
	}
}

// RequireRole rejects users below role with 403. Anonymous requests get 401.
func RequireRole(role int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "you must be logged in to do this")
		}
		if u.Role < role {
			return fiber.NewError(fiber.StatusForbidden, "you don't have the required role")
		}
		return c.Next()
	}
}
