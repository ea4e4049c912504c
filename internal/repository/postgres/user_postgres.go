package postgres

import (
	"context"
	"database/sql"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, slug, email, password_hash, role, avatar, banned_until, exiled, created_at, updated_at`

func scanUser(s scanner) (*model.User, error) {
	var (
		u      model.User
		banned sql.NullTime
	)
	if err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Slug,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Avatar,
		&banned,
		&u.Exiled,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if banned.Valid {
		t := banned.Time
		u.BannedUntil = &t
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, slug, email, password_hash, role, avatar, exiled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.Slug,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Avatar,
		u.Exiled,
		u.CreatedAt,
		u.UpdatedAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// FindByID fetches a single user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// FindByEmail fetches a single user by lower-cased email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// List returns users using LIMIT/OFFSET pagination and a total count.
func (r *UserPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	const qCount = `SELECT COUNT(*) FROM users`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// Update writes the mutable user fields and returns the stored record.
func (r *UserPostgres) Update(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		UPDATE users
		SET username = $2, slug = $3, role = $4, avatar = $5, banned_until = $6, exiled = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + userColumns
	var banned sql.NullTime
	if u.BannedUntil != nil {
		banned = sql.NullTime{Time: *u.BannedUntil, Valid: true}
	}
	out, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.Slug,
		u.Role,
		u.Avatar,
		banned,
		u.Exiled,
		u.UpdatedAt,
	))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
