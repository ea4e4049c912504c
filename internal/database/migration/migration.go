// Package migration creates the PostgreSQL schema. Every step is idempotent.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username      TEXT        NOT NULL,
  slug          TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          INTEGER     NOT NULL DEFAULT 0 CHECK (role BETWEEN 0 AND 4),
  avatar        TEXT        NOT NULL DEFAULT '',
  banned_until  TIMESTAMPTZ NULL,
  exiled        BOOLEAN     NOT NULL DEFAULT false,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_global_media",
		SQL: `CREATE TABLE IF NOT EXISTS global_media (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  source_type TEXT        NOT NULL,
  source_id   TEXT        NOT NULL,
  artist      TEXT        NOT NULL DEFAULT '',
  title       TEXT        NOT NULL DEFAULT '',
  duration    INTEGER     NOT NULL DEFAULT 0 CHECK (duration >= 0),
  thumbnail   TEXT        NOT NULL DEFAULT '',
  nsfw        BOOLEAN     NOT NULL DEFAULT false,
  restricted  JSONB       NOT NULL DEFAULT '[]',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (source_type, source_id)
);`,
	},
	{
		Name: "create_table_playlists",
		SQL: `CREATE TABLE IF NOT EXISTS playlists (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  author_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  shared      BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_playlist_items",
		SQL: `CREATE TABLE IF NOT EXISTS playlist_items (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  playlist_id UUID        NOT NULL REFERENCES playlists (id) ON DELETE CASCADE,
  media_id    UUID        NOT NULL REFERENCES global_media (id),
  artist      TEXT        NOT NULL DEFAULT '',
  title       TEXT        NOT NULL DEFAULT '',
  start_time  INTEGER     NOT NULL DEFAULT 0 CHECK (start_time >= 0),
  end_time    INTEGER     NOT NULL DEFAULT 0 CHECK (end_time >= 0),
  position    INTEGER     NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_history",
		SQL: `CREATE TABLE IF NOT EXISTS history (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  media_id   UUID        NOT NULL REFERENCES global_media (id),
  artist     TEXT        NOT NULL DEFAULT '',
  title      TEXT        NOT NULL DEFAULT '',
  start_time INTEGER     NOT NULL DEFAULT 0,
  end_time   INTEGER     NOT NULL DEFAULT 0,
  played_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_playlists_author",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_playlists_author ON playlists (author_id, created_at);`,
	},
	{
		Name: "create_index_playlist_items_order",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_playlist_items_order ON playlist_items (playlist_id, position);`,
	},
	{
		Name: "create_index_history_user_played",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_history_user_played ON history (user_id, played_at DESC);`,
	},
}

// sentinel is the last table created by steps.
const sentinel = "public.history"

// EnsureMigrated runs the migration unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinel).Scan(&exists); err != nil {
		log.Error().Err(err).
			Str("event", "db_migration_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	return Migrate(ctx, db, log)
}

// Migrate executes every step in order.
func Migrate(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()
	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Msg("")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug().
			Str("event", "db_migration_step").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("")
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int("steps", len(steps)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("")
	return nil
}
