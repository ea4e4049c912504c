// Package postgres implements the repository interfaces on PostgreSQL through
// database/sql with parameterized queries. It contains no business logic.
package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

const uniqueViolation = "23505"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

const mediaColumns = `m.id, m.source_type, m.source_id, m.artist, m.title, m.duration, m.thumbnail, m.nsfw, m.restricted, m.created_at`

func scanMedia(s scanner, m *model.GlobalMedia, extra ...any) error {
	var restricted []byte
	dest := append(extra,
		&m.ID, &m.SourceType, &m.SourceID, &m.Artist, &m.Title,
		&m.Duration, &m.Thumbnail, &m.NSFW, &restricted, &m.CreatedAt,
	)
	if err := s.Scan(dest...); err != nil {
		return err
	}
	return decodeRestricted(restricted, m)
}

func decodeRestricted(raw []byte, m *model.GlobalMedia) error {
	m.Restricted = []string{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &m.Restricted)
}

func encodeRestricted(r []string) (string, error) {
	if r == nil {
		r = []string{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
