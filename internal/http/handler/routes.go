package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/model"
	"uwaveapi/internal/service"
)

// Services bundles the use cases the routes call.
type Services struct {
	Auth      service.AuthService
	Playlists service.PlaylistService
	Users     service.UserService
	Search    service.SearchService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Session cookies
// get the Secure flag when secureCookie is set.
func RegisterRoutes(app *fiber.App, db *sql.DB, rdb redis.UniversalClient, svc Services, secureCookie bool) {
	app.Get("/health", HealthCheck(db, rdb))
	app.Get("/healthz", LivenessProbe())

	authn := middleware.Authenticate(svc.Auth)
	moderator := middleware.RequireRole(model.RoleModerator)

	a := app.Group("/auth")
	a.Post("/register", Register(svc.Auth))
	a.Post("/login", Login(svc.Auth, secureCookie))
	a.Get("/", authn, CurrentUser())
	a.Delete("/session", Logout(secureCookie))

	p := app.Group("/playlists", authn, middleware.RequireUser())
	p.Get("/", ListPlaylists(svc.Playlists))
	p.Post("/", CreatePlaylist(svc.Playlists))
	p.Get("/:id", GetPlaylist(svc.Playlists))
	p.Delete("/:id", DeletePlaylist(svc.Playlists))
	p.Put("/:id/rename", RenamePlaylist(svc.Playlists))
	p.Put("/:id/share", SharePlaylist(svc.Playlists))
	p.Put("/:id/move", MovePlaylistItems(svc.Playlists))
	p.Put("/:id/activate", ActivatePlaylist(svc.Playlists))
	p.Get("/:id/export", ExportPlaylist(svc.Playlists))
	p.Get("/:id/media", ListPlaylistMedia(svc.Playlists))
	p.Post("/:id/media", AddPlaylistMedia(svc.Playlists))
	p.Delete("/:id/media", RemovePlaylistMedia(svc.Playlists))
	p.Get("/:id/media/:mediaID", GetPlaylistItem(svc.Playlists))
	p.Put("/:id/media/:mediaID", UpdatePlaylistItem(svc.Playlists))
	p.Delete("/:id/media/:mediaID", RemovePlaylistItem(svc.Playlists))
	p.Post("/:id/media/:mediaID/copy", CopyPlaylistItem(svc.Playlists))

	u := app.Group("/users", authn, middleware.RequireUser())
	u.Get("/", ListUsers(svc.Users))
	u.Get("/:id", GetUser(svc.Users))
	u.Get("/:id/history", UserHistory(svc.Users))
	u.Post("/:id/ban", moderator, BanUser(svc.Users))
	u.Post("/:id/mute", moderator, MuteUser(svc.Users))
	u.Put("/:id/roles", moderator, ChangeRole(svc.Users))
	u.Put("/:id/role", moderator, ChangeRole(svc.Users))
	u.Post("/:id/disconnect", moderator, DisconnectUser(svc.Users))
	u.Put("/:id/username", ChangeUsername(svc.Users))
	u.Put("/:id/status", SetStatus(svc.Users))

	s := app.Group("/search", authn, middleware.RequireUser())
	s.Get("/", SearchAll(svc.Search))
	s.Get("/:sourceType", Search(svc.Search))
}
