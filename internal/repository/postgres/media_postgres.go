package postgres

import (
	"context"
	"database/sql"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

// MediaPostgres is a PostgreSQL implementation of repository.MediaRepository.
type MediaPostgres struct {
	db *sql.DB
}

// NewMediaPostgres creates a new MediaPostgres repository.
func NewMediaPostgres(db *sql.DB) *MediaPostgres {
	return &MediaPostgres{db: db}
}

var _ repository.MediaRepository = (*MediaPostgres)(nil)

// FindBySource looks up provider metadata by its source pair.
func (r *MediaPostgres) FindBySource(ctx context.Context, sourceType, sourceID string) (*model.GlobalMedia, error) {
	const q = `SELECT ` + mediaColumns + ` FROM global_media m WHERE m.source_type = $1 AND m.source_id = $2`
	var m model.GlobalMedia
	if err := scanMedia(r.db.QueryRowContext(ctx, q, sourceType, sourceID), &m); err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

// Create inserts provider metadata. A concurrent insert of the same source keeps the
// first row, which is then returned.
func (r *MediaPostgres) Create(ctx context.Context, in *model.GlobalMedia) (*model.GlobalMedia, error) {
	restricted, err := encodeRestricted(in.Restricted)
	if err != nil {
		return nil, err
	}
	const q = `
		WITH ins AS (
			INSERT INTO global_media (id, source_type, source_id, artist, title, duration, thumbnail, nsfw, restricted, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (source_type, source_id) DO NOTHING
			RETURNING *
		)
		SELECT ` + mediaColumns + ` FROM ins m
		UNION ALL
		SELECT ` + mediaColumns + ` FROM global_media m WHERE m.source_type = $2 AND m.source_id = $3
		LIMIT 1`
	var m model.GlobalMedia
	if err := scanMedia(r.db.QueryRowContext(ctx, q,
		in.ID,
		in.SourceType,
		in.SourceID,
		in.Artist,
		in.Title,
		in.Duration,
		in.Thumbnail,
		in.NSFW,
		restricted,
		in.CreatedAt,
	), &m); err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}
