package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Create(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) ListByAuthor(ctx context.Context, authorID string, pq repository.PageQuery) (*repository.PageResult[model.Playlist], error) {
	args := m.Called(ctx, authorID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Playlist]), args.Error(1)
}

func (m *MockPlaylistRepository) Update(ctx context.Context, p *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaylistRepository) ListItems(ctx context.Context, playlistID string, pq repository.PageQuery) (*repository.PageResult[model.PlaylistItem], error) {
	args := m.Called(ctx, playlistID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.PlaylistItem]), args.Error(1)
}

func (m *MockPlaylistRepository) FindItem(ctx context.Context, playlistID, itemID string) (*model.PlaylistItem, error) {
	args := m.Called(ctx, playlistID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistItem), args.Error(1)
}

func (m *MockPlaylistRepository) UpdateItem(ctx context.Context, item *model.PlaylistItem) (*model.PlaylistItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistItem), args.Error(1)
}

func (m *MockPlaylistRepository) InsertItems(ctx context.Context, playlistID string, items []model.PlaylistItem, at repository.Placement) ([]model.PlaylistItem, error) {
	args := m.Called(ctx, playlistID, items, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlaylistItem), args.Error(1)
}

func (m *MockPlaylistRepository) MoveItems(ctx context.Context, playlistID string, itemIDs []string, at repository.Placement) error {
	args := m.Called(ctx, playlistID, itemIDs, at)
	return args.Error(0)
}

func (m *MockPlaylistRepository) DeleteItems(ctx context.Context, playlistID string, itemIDs []string) (int, error) {
	args := m.Called(ctx, playlistID, itemIDs)
	return args.Int(0), args.Error(1)
}
