package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
	"uwaveapi/internal/service"
)

type MockPlaylistService struct {
	mock.Mock
}

func (m *MockPlaylistService) List(ctx context.Context, user *model.User, page, limit int) (*model.Page[model.Playlist], error) {
	args := m.Called(ctx, user, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Playlist]), args.Error(1)
}

func (m *MockPlaylistService) Create(ctx context.Context, user *model.User, in service.CreatePlaylistInput) (*model.Playlist, error) {
	args := m.Called(ctx, user, in)
	return playlist(args)
}

func (m *MockPlaylistService) Get(ctx context.Context, user *model.User, id string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id)
	return playlist(args)
}

func (m *MockPlaylistService) Delete(ctx context.Context, user *model.User, id string) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func (m *MockPlaylistService) Rename(ctx context.Context, user *model.User, id, name string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id, name)
	return playlist(args)
}

func (m *MockPlaylistService) Share(ctx context.Context, user *model.User, id string, shared bool) (*model.Playlist, error) {
	args := m.Called(ctx, user, id, shared)
	return playlist(args)
}

func (m *MockPlaylistService) Activate(ctx context.Context, user *model.User, id string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id)
	return playlist(args)
}

func (m *MockPlaylistService) Move(ctx context.Context, user *model.User, id string, itemIDs []string, after string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id, itemIDs, after)
	return playlist(args)
}

func (m *MockPlaylistService) ListMedia(ctx context.Context, user *model.User, id string, page, limit int) (*model.Page[model.PlaylistItem], error) {
	args := m.Called(ctx, user, id, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.PlaylistItem]), args.Error(1)
}

func (m *MockPlaylistService) AddMedia(ctx context.Context, user *model.User, id string, items []service.MediaInput, after string) ([]model.PlaylistItem, error) {
	args := m.Called(ctx, user, id, items, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlaylistItem), args.Error(1)
}

func (m *MockPlaylistService) RemoveMedia(ctx context.Context, user *model.User, id string, itemIDs []string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id, itemIDs)
	return playlist(args)
}

func (m *MockPlaylistService) RemoveItem(ctx context.Context, user *model.User, id, itemID string) (*model.Playlist, error) {
	args := m.Called(ctx, user, id, itemID)
	return playlist(args)
}

func (m *MockPlaylistService) GetMedia(ctx context.Context, user *model.User, id, itemID string) (*model.PlaylistItem, error) {
	args := m.Called(ctx, user, id, itemID)
	return item(args)
}

func (m *MockPlaylistService) UpdateMedia(ctx context.Context, user *model.User, id, itemID string, meta service.ItemMetadata) (*model.PlaylistItem, error) {
	args := m.Called(ctx, user, id, itemID, meta)
	return item(args)
}

func (m *MockPlaylistService) CopyMedia(ctx context.Context, user *model.User, id, itemID, toPlaylistID string) (*model.PlaylistItem, error) {
	args := m.Called(ctx, user, id, itemID, toPlaylistID)
	return item(args)
}

func (m *MockPlaylistService) Export(ctx context.Context, user *model.User, id string) (*service.ExportResult, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func playlist(args mock.Arguments) (*model.Playlist, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Playlist), args.Error(1)
}

func item(args mock.Arguments) (*model.PlaylistItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistItem), args.Error(1)
}
