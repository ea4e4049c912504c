package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	_ "uwaveapi/docs"
	"uwaveapi/internal/auth"
	"uwaveapi/internal/config"
	"uwaveapi/internal/database"
	"uwaveapi/internal/database/migration"
	handlers "uwaveapi/internal/http/handler"
	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/logger"
	"uwaveapi/internal/otel"
	"uwaveapi/internal/provider"
	"uwaveapi/internal/realtime"
	"uwaveapi/internal/repository/postgres"
	"uwaveapi/internal/service"
	"uwaveapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func load(cmd *cli.Command) (*config.AppConfig, zerolog.Logger, error) {
	cfg, err := config.LoadFile(cmd.String("config"))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(os.Stdout, cfg.LoadLocation()), nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := load(cmd)
	if err != nil {
		return err
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	return migration.Migrate(ctx, db, log)
}

func sources(cfg config.ProviderConfig, log zerolog.Logger) *provider.Registry {
	var list []provider.Source
	if cfg.YouTubeKey != "" {
		list = append(list, provider.NewYouTube(cfg.YouTubeKey, cfg.YouTubeBaseURL, provider.NewLimiter(cfg.RequestsPerSecond)))
	} else {
		log.Warn().Msg("YOUTUBE_API_KEY not set, youtube source disabled")
	}
	if cfg.SoundCloudKey != "" {
		list = append(list, provider.NewSoundCloud(cfg.SoundCloudKey, cfg.SoundCloudBaseURL, provider.NewLimiter(cfg.RequestsPerSecond)))
	} else {
		log.Warn().Msg("SOUNDCLOUD_CLIENT_ID not set, soundcloud source disabled")
	}
	return provider.NewRegistry(list...)
}

// mountDocs serves Swagger UI. The document carries no host or scheme, so the UI
// calls whatever host served it.
func mountDocs(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := load(cmd)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		return err
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	var store storage.Storage
	if cfg.MinIO.Endpoint != "" {
		if store, err = storage.NewMinIO(ctx, cfg.MinIO); err != nil {
			return fmt.Errorf("initialize object storage: %w", err)
		}
	} else {
		log.Warn().Msg("MINIO_ENDPOINT not set, playlist export disabled")
	}

	users := postgres.NewUserPostgres(db)
	playlists := postgres.NewPlaylistPostgres(db)
	media := postgres.NewMediaPostgres(db)
	history := postgres.NewHistoryPostgres(db)

	bus := realtime.NewBus(rdb)
	state := realtime.NewState(rdb)
	registry := sources(cfg.Provider, log)

	svc := handlers.Services{
		Auth:      service.NewAuthService(users, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), log),
		Playlists: service.NewPlaylistService(playlists, media, users, registry, state, store, log),
		Users:     service.NewUserService(users, history, state, realtime.NewBooth(rdb, bus), bus, log),
		Search:    service.NewSearchService(registry, log),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(prom.Handler())
	app.Use(middleware.Logger(log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	mountDocs(app)

	handlers.RegisterRoutes(app, db, rdb, svc, cfg.Auth.SecureCookie)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("listening")
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
