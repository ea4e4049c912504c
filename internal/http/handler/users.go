package handler

import (
	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/service"
)

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "page, from 0"
// @Param limit query int false "page size, at most 50"
// @Success 200 {object} model.Page[model.User]
// @Router /users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(u)
	}
}

func UserHistory(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.History(c.UserContext(), c.Params("id"), c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}

// BanUser godoc
// @Summary Ban a user for time milliseconds, or lift the ban when time <= 0
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "user ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errorPayload
// @Router /users/{id}/ban [post]
func BanUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		d, err := f.millis("time")
		if err != nil {
			return respond(c, err)
		}
		exiled := false
		if f.set("exiled") {
			if exiled, err = f.boolean("exiled"); err != nil {
				return respond(c, err)
			}
		}

		u, err := svc.Ban(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), d, exiled)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(u)
	}
}

func MuteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		d, err := f.millis("time")
		if err != nil {
			return respond(c, err)
		}
		muted, err := svc.Mute(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), d)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"muted": muted})
	}
}

// ChangeRole godoc
// @Summary Change the role of a user
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "user ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errorPayload
// @Router /users/{id}/roles [put]
func ChangeRole(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		role, err := f.integer("role")
		if err != nil {
			return respond(c, err)
		}
		u, err := svc.ChangeRole(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), role)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(u)
	}
}

func ChangeUsername(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		name, err := f.str("username")
		if err != nil {
			return respond(c, err)
		}
		u, err := svc.ChangeUsername(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), name)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(u)
	}
}

func SetStatus(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		status, err := f.integer("status")
		if err != nil {
			return respond(c, err)
		}
		got, err := svc.SetStatus(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), status)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"status": got})
	}
}

func DisconnectUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Disconnect(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
			return respond(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
