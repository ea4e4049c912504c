package handler

import (
	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/service"
)

// SearchAll godoc
// @Summary Search every media source
// @Tags search
// @Produce json
// @Param query query string true "search terms"
// @Success 200 {object} map[string][]model.GlobalMedia
// @Failure 422 {object} errorPayload
// @Router /search [get]
func SearchAll(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.SearchAll(c.UserContext(), c.Query("query"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}

// Search godoc
// @Summary Search one media source
// @Tags search
// @Produce json
// @Param sourceType path string true "youtube or soundcloud"
// @Param query query string true "search terms"
// @Success 200 {array} model.GlobalMedia
// @Failure 404 {object} errorPayload
// @Router /search/{sourceType} [get]
func Search(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Search(c.UserContext(), c.Params("sourceType"), c.Query("query"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}
