package postgres

import (
	"context"
	"database/sql"
	"time"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

// PlaylistPostgres is a PostgreSQL implementation of repository.PlaylistRepository.
type PlaylistPostgres struct {
	db *sql.DB
}

// NewPlaylistPostgres creates a new PlaylistPostgres repository.
func NewPlaylistPostgres(db *sql.DB) *PlaylistPostgres {
	return &PlaylistPostgres{db: db}
}

var _ repository.PlaylistRepository = (*PlaylistPostgres)(nil)

const playlistColumns = `p.id, p.author_id, p.name, p.description, p.shared, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM playlist_items i WHERE i.playlist_id = p.id) AS size`

const itemColumns = `i.id, i.playlist_id, i.media_id, i.artist, i.title, i.start_time, i.end_time, i.position, i.created_at`

func scanPlaylist(s scanner) (*model.Playlist, error) {
	var p model.Playlist
	if err := s.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Name,
		&p.Description,
		&p.Shared,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Size,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanItem(s scanner) (*model.PlaylistItem, error) {
	var (
		it model.PlaylistItem
		m  model.GlobalMedia
	)
	if err := scanMedia(s, &m,
		&it.ID, &it.PlaylistID, &it.MediaID, &it.Artist, &it.Title,
		&it.Start, &it.End, &it.Position, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	it.Media = &m
	return &it, nil
}

// Create inserts an empty playlist.
func (r *PlaylistPostgres) Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	const q = `
		INSERT INTO playlists (id, author_id, name, description, shared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.AuthorID,
		p.Name,
		p.Description,
		p.Shared,
		p.CreatedAt,
		p.UpdatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	out := *p
	out.Size = 0
	return &out, nil
}

// FindByID fetches a playlist with its item count.
func (r *PlaylistPostgres) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	const q = `SELECT ` + playlistColumns + ` FROM playlists p WHERE p.id = $1`
	p, err := scanPlaylist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// ListByAuthor returns the playlists of one user ordered by creation time.
func (r *PlaylistPostgres) ListByAuthor(ctx context.Context, authorID string, pq repository.PageQuery) (*repository.PageResult[model.Playlist], error) {
	const qCount = `SELECT COUNT(*) FROM playlists WHERE author_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, authorID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + playlistColumns + ` FROM playlists p WHERE p.author_id = $1
		ORDER BY p.created_at ASC, p.id ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, authorID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Playlist]{Items: items, Total: total}, nil
}

// Update writes name, description and shared flag.
func (r *PlaylistPostgres) Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	const q = `
		UPDATE playlists SET name = $2, description = $3, shared = $4, updated_at = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Shared, p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, p.ID)
}

// Delete removes a playlist; items cascade.
func (r *PlaylistPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM playlists WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListItems returns one page of items in playlist order.
func (r *PlaylistPostgres) ListItems(ctx context.Context, playlistID string, pq repository.PageQuery) (*repository.PageResult[model.PlaylistItem], error) {
	const qCount = `SELECT COUNT(*) FROM playlist_items WHERE playlist_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, playlistID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + itemColumns + `, ` + mediaColumns + `
		FROM playlist_items i
		JOIN global_media m ON m.id = i.media_id
		WHERE i.playlist_id = $1
		ORDER BY i.position ASC, i.created_at ASC, i.id ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, playlistID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PlaylistItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.PlaylistItem]{Items: items, Total: total}, nil
}

// FindItem fetches one item of a playlist.
func (r *PlaylistPostgres) FindItem(ctx context.Context, playlistID, itemID string) (*model.PlaylistItem, error) {
	const q = `
		SELECT ` + itemColumns + `, ` + mediaColumns + `
		FROM playlist_items i
		JOIN global_media m ON m.id = i.media_id
		WHERE i.playlist_id = $1 AND i.id = $2`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, playlistID, itemID))
	if err != nil {
		return nil, mapErr(err)
	}
	return it, nil
}

// UpdateItem writes the per-playlist metadata overrides of an item.
func (r *PlaylistPostgres) UpdateItem(ctx context.Context, it *model.PlaylistItem) (*model.PlaylistItem, error) {
	const q = `
		UPDATE playlist_items SET artist = $3, title = $4, start_time = $5, end_time = $6
		WHERE playlist_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, it.PlaylistID, it.ID, it.Artist, it.Title, it.Start, it.End)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindItem(ctx, it.PlaylistID, it.ID)
}

// InsertItems stores new items at the placement and renumbers the items behind them.
func (r *PlaylistPostgres) InsertItems(ctx context.Context, playlistID string, items []model.PlaylistItem, at repository.Placement) ([]model.PlaylistItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	positions, order, err := lockOrder(ctx, tx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := anchored(positions, at); err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	next := place(order, ids, at)
	index := indexOf(next)

	const qInsert = `
		INSERT INTO playlist_items (id, playlist_id, media_id, artist, title, start_time, end_time, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	out := make([]model.PlaylistItem, len(items))
	for i, it := range items {
		it.PlaylistID = playlistID
		it.Position = index[it.ID]
		if _, err := tx.ExecContext(ctx, qInsert,
			it.ID, it.PlaylistID, it.MediaID, it.Artist, it.Title,
			it.Start, it.End, it.Position, it.CreatedAt,
		); err != nil {
			return nil, mapErr(err)
		}
		out[i] = it
	}

	if err := renumber(ctx, tx, positions, next); err != nil {
		return nil, err
	}
	if err := touch(ctx, tx, playlistID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// MoveItems relocates items within the playlist.
func (r *PlaylistPostgres) MoveItems(ctx context.Context, playlistID string, itemIDs []string, at repository.Placement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	positions, order, err := lockOrder(ctx, tx, playlistID)
	if err != nil {
		return err
	}
	if err := anchored(positions, at); err != nil {
		return err
	}
	if err := renumber(ctx, tx, positions, move(order, itemIDs, at)); err != nil {
		return err
	}
	if err := touch(ctx, tx, playlistID); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteItems removes items and closes the gaps they leave.
func (r *PlaylistPostgres) DeleteItems(ctx context.Context, playlistID string, itemIDs []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	positions, order, err := lockOrder(ctx, tx, playlistID)
	if err != nil {
		return 0, err
	}

	const qDelete = `DELETE FROM playlist_items WHERE playlist_id = $1 AND id = $2`
	removed := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := positions[id]; !ok || removed[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx, qDelete, playlistID, id); err != nil {
			return 0, err
		}
		removed[id] = true
	}
	if len(removed) == 0 {
		return 0, tx.Commit()
	}

	rest := make([]string, 0, len(order))
	for _, id := range order {
		if !removed[id] {
			rest = append(rest, id)
		}
	}
	if err := renumber(ctx, tx, positions, rest); err != nil {
		return 0, err
	}
	if err := touch(ctx, tx, playlistID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(removed), nil
}

// anchored checks that the item a placement refers to is still in the playlist.
func anchored(positions map[string]int, at repository.Placement) error {
	if at.After == "" {
		return nil
	}
	if _, ok := positions[at.After]; !ok {
		return repository.ErrAnchorNotFound
	}
	return nil
}

// lockOrder takes the playlist row lock and loads the current item order.
func lockOrder(ctx context.Context, tx *sql.Tx, playlistID string) (map[string]int, []string, error) {
	var id string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM playlists WHERE id = $1 FOR UPDATE`, playlistID).Scan(&id); err != nil {
		return nil, nil, mapErr(err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, position FROM playlist_items
		WHERE playlist_id = $1
		ORDER BY position ASC, created_at ASC, id ASC`, playlistID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	positions := make(map[string]int)
	order := make([]string, 0)
	for rows.Next() {
		var (
			itemID string
			pos    int
		)
		if err := rows.Scan(&itemID, &pos); err != nil {
			return nil, nil, err
		}
		positions[itemID] = pos
		order = append(order, itemID)
	}
	return positions, order, rows.Err()
}

// renumber writes the index of every item of next whose stored position differs.
// Items absent from positions were inserted in the same transaction and are skipped.
func renumber(ctx context.Context, tx *sql.Tx, positions map[string]int, next []string) error {
	const q = `UPDATE playlist_items SET position = $2 WHERE id = $1`
	for i, id := range next {
		pos, ok := positions[id]
		if !ok || pos == i {
			continue
		}
		if _, err := tx.ExecContext(ctx, q, id, i); err != nil {
			return err
		}
	}
	return nil
}

func touch(ctx context.Context, tx *sql.Tx, playlistID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE playlists SET updated_at = $2 WHERE id = $1`, playlistID, time.Now().UTC())
	return err
}

func indexOf(order []string) map[string]int {
	idx := make(map[string]int, len(order))
	for i, id := range order {
		idx[id] = i
	}
	return idx
}
