package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/auth"
	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/service"
)

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} model.User
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		var in service.RegisterInput
		if in.Username, err = f.str("username"); err != nil {
			return respond(c, err)
		}
		if in.Email, err = f.str("email"); err != nil {
			return respond(c, err)
		}
		if in.Password, err = f.str("password"); err != nil {
			return respond(c, err)
		}

		u, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(u)
	}
}

// Login godoc
// @Summary Log in and receive a session token, also set as the uwsession cookie
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} service.Session
// @Failure 401 {object} errorPayload
// @Router /auth/login [post]
func Login(svc service.AuthService, secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		email, err := f.str("email")
		if err != nil {
			return respond(c, err)
		}
		password, err := f.str("password")
		if err != nil {
			return respond(c, err)
		}

		sess, err := svc.Login(c.UserContext(), email, password)
		if err != nil {
			return respond(c, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     auth.CookieName,
			Value:    sess.Token,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HTTPOnly: true,
			Secure:   secureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(sess)
	}
}

// CurrentUser returns the authenticated user, or null for anonymous requests.
func CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	}
}

func Logout(secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   secureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}
