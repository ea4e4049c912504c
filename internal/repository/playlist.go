package repository

import (
	"context"

	"uwaveapi/internal/model"
)

// Placement selects where inserted or moved items land in a playlist.
// The zero value means the start of the playlist.
type Placement struct {
	// After places items directly behind this item. An id that is not in the
	// playlist falls back to the start.
	After string
	// AtEnd appends and overrides After.
	AtEnd bool
}

// PlaylistRepository defines data access for playlists and their ordered items.
type PlaylistRepository interface {
	Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error)
	FindByID(ctx context.Context, id string) (*model.Playlist, error)
	ListByAuthor(ctx context.Context, authorID string, pq PageQuery) (*PageResult[model.Playlist], error)

	// Update persists name, description and shared flag.
	Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error)

	// Delete removes the playlist and its items.
	Delete(ctx context.Context, id string) error

	// ListItems returns one page of items in playlist order, with GlobalMedia populated.
	ListItems(ctx context.Context, playlistID string, pq PageQuery) (*PageResult[model.PlaylistItem], error)

	// FindItem returns ErrNotFound when the item is not part of the playlist.
	FindItem(ctx context.Context, playlistID, itemID string) (*model.PlaylistItem, error)

	// UpdateItem persists artist, title, start and end.
	UpdateItem(ctx context.Context, item *model.PlaylistItem) (*model.PlaylistItem, error)

	// InsertItems stores items at the given placement. Runs under a playlist row lock.
	InsertItems(ctx context.Context, playlistID string, items []model.PlaylistItem, at Placement) ([]model.PlaylistItem, error)

	// MoveItems moves the given items, keeping their relative order, to the given placement.
	MoveItems(ctx context.Context, playlistID string, itemIDs []string, at Placement) error

	// DeleteItems removes the given items; ids not in the playlist are ignored.
	// Returns the number of removed items.
	DeleteItems(ctx context.Context, playlistID string, itemIDs []string) (int, error)
}
