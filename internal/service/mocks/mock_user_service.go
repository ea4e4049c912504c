package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, page, limit int) (*model.Page[model.User], error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.User]), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	return user(args)
}

func (m *MockUserService) History(ctx context.Context, id string, page, limit int) (*model.Page[model.HistoryEntry], error) {
	args := m.Called(ctx, id, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.HistoryEntry]), args.Error(1)
}

func (m *MockUserService) Ban(ctx context.Context, moderator *model.User, id string, d time.Duration, exiled bool) (*model.User, error) {
	args := m.Called(ctx, moderator, id, d, exiled)
	return user(args)
}

func (m *MockUserService) Mute(ctx context.Context, moderator *model.User, id string, d time.Duration) (bool, error) {
	args := m.Called(ctx, moderator, id, d)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) ChangeRole(ctx context.Context, moderator *model.User, id string, role int) (*model.User, error) {
	args := m.Called(ctx, moderator, id, role)
	return user(args)
}

func (m *MockUserService) ChangeUsername(ctx context.Context, moderator *model.User, id, username string) (*model.User, error) {
	args := m.Called(ctx, moderator, id, username)
	return user(args)
}

func (m *MockUserService) SetStatus(ctx context.Context, u *model.User, id string, status int) (int, error) {
	args := m.Called(ctx, u, id, status)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) Disconnect(ctx context.Context, moderator *model.User, id string) error {
	args := m.Called(ctx, moderator, id)
	return args.Error(0)
}

func user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
