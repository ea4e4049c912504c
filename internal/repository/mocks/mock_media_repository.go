package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
)

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) FindBySource(ctx context.Context, sourceType, sourceID string) (*model.GlobalMedia, error) {
	args := m.Called(ctx, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GlobalMedia), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, gm *model.GlobalMedia) (*model.GlobalMedia, error) {
	args := m.Called(ctx, gm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GlobalMedia), args.Error(1)
}
