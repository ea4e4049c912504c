package handler

import (
	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/service"
)

// ListPlaylists godoc
// @Summary List the current user's playlists
// @Tags playlists
// @Produce json
// @Param page query int false "page, from 0"
// @Param limit query int false "page size"
// @Success 200 {object} model.Page[model.Playlist]
// @Router /playlists [get]
func ListPlaylists(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), middleware.CurrentUser(c), c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}

// CreatePlaylist godoc
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Success 200 {object} model.Playlist
// @Failure 422 {object} errorPayload
// @Router /playlists [post]
func CreatePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		var in service.CreatePlaylistInput
		if in.Name, err = f.str("name"); err != nil {
			return respond(c, err)
		}
		if in.Description, err = f.str("description"); err != nil {
			return respond(c, err)
		}
		if in.Shared, err = f.boolean("shared"); err != nil {
			return respond(c, err)
		}

		p, err := svc.Create(c.UserContext(), middleware.CurrentUser(c), in)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

// GetPlaylist godoc
// @Summary Get a playlist with its first page of media
// @Tags playlists
// @Produce json
// @Param id path string true "playlist ID"
// @Success 200 {object} model.Playlist
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /playlists/{id} [get]
func GetPlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

// DeletePlaylist godoc
// @Summary Delete a playlist
// @Tags playlists
// @Param id path string true "playlist ID"
// @Success 204
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /playlists/{id} [delete]
func DeletePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
			return respond(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func RenamePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		name, err := f.str("name")
		if err != nil {
			return respond(c, err)
		}
		p, err := svc.Rename(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), name)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

func SharePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		share, err := f.boolean("share")
		if err != nil {
			return respond(c, err)
		}
		p, err := svc.Share(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), share)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

func ActivatePlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Activate(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

// itemsAfter reads the {items, after} shape shared by move and add. Unless
// requireAfter is set, a missing after behaves like null.
func itemsAfter(c *fiber.Ctx, items any, requireAfter bool) (string, error) {
	f, err := parseFields(c)
	if err != nil {
		return "", err
	}
	if !f.has("items") || (requireAfter && !f.has("after")) {
		return "", unprocessable("missing items or after property")
	}
	if err := f.array("items", items); err != nil {
		return "", err
	}
	return f.optionalStr("after")
}

// MovePlaylistItems godoc
// @Summary Move items directly after another item, or to the start when after is null
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path string true "playlist ID"
// @Success 200 {object} model.Playlist
// @Failure 422 {object} errorPayload
// @Router /playlists/{id}/move [put]
func MovePlaylistItems(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []string
		after, err := itemsAfter(c, &items, true)
		if err != nil {
			return respond(c, err)
		}
		p, err := svc.Move(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), items, after)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

func ListPlaylistMedia(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"),
			c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}

// AddPlaylistMedia godoc
// @Summary Add provider media to a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path string true "playlist ID"
// @Success 200 {array} model.PlaylistItem
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /playlists/{id}/media [post]
func AddPlaylistMedia(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []service.MediaInput
		after, err := itemsAfter(c, &items, false)
		if err != nil {
			return respond(c, err)
		}
		out, err := svc.AddMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), items, after)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(out)
	}
}

func RemovePlaylistMedia(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		var items []string
		if err := f.array("items", &items); err != nil {
			return respond(c, unprocessable("items is not set"))
		}
		p, err := svc.RemoveMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), items)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

func GetPlaylistItem(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		it, err := svc.GetMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), c.Params("mediaID"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(it)
	}
}

func UpdatePlaylistItem(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		var meta service.ItemMetadata
		if meta.Artist, err = f.str("artist"); err != nil {
			return respond(c, err)
		}
		if meta.Title, err = f.str("title"); err != nil {
			return respond(c, err)
		}
		if meta.Start, err = f.integer("start"); err != nil {
			return respond(c, err)
		}
		if meta.End, err = f.integer("end"); err != nil {
			return respond(c, err)
		}

		it, err := svc.UpdateMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), c.Params("mediaID"), meta)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(it)
	}
}

func RemovePlaylistItem(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.RemoveItem(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), c.Params("mediaID"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(p)
	}
}

func CopyPlaylistItem(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFields(c)
		if err != nil {
			return respond(c, err)
		}
		to, err := f.str("toPlaylistID")
		if err != nil {
			return respond(c, err)
		}
		it, err := svc.CopyMedia(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), c.Params("mediaID"), to)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(it)
	}
}

// ExportPlaylist godoc
// @Summary Export a playlist snapshot to object storage
// @Tags playlists
// @Produce json
// @Param id path string true "playlist ID"
// @Success 200 {object} service.ExportResult
// @Failure 503 {object} errorPayload
// @Router /playlists/{id}/export [get]
func ExportPlaylist(svc service.PlaylistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Export(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(res)
	}
}
