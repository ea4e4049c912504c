package postgres

import (
	"context"
	"database/sql"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

// HistoryPostgres is a PostgreSQL implementation of repository.HistoryRepository.
type HistoryPostgres struct {
	db *sql.DB
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// ListByUser returns history entries of a user, most recently played first.
func (r *HistoryPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.HistoryEntry], error) {
	const qCount = `SELECT COUNT(*) FROM history WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT h.id, h.user_id, h.media_id, h.artist, h.title, h.start_time, h.end_time, h.played_at, ` + mediaColumns + `
		FROM history h
		JOIN global_media m ON m.id = h.media_id
		WHERE h.user_id = $1
		ORDER BY h.played_at DESC, h.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var (
			h model.HistoryEntry
			m model.GlobalMedia
		)
		if err := scanMedia(rows, &m,
			&h.ID, &h.UserID, &h.MediaID, &h.Artist, &h.Title, &h.Start, &h.End, &h.PlayedAt,
		); err != nil {
			return nil, err
		}
		h.Media = &m
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.HistoryEntry]{Items: items, Total: total}, nil
}
