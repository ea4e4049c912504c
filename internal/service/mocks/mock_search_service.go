package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) SearchAll(ctx context.Context, query string) (map[string][]model.GlobalMedia, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]model.GlobalMedia), args.Error(1)
}

func (m *MockSearchService) Search(ctx context.Context, sourceType, query string) ([]model.GlobalMedia, error) {
	args := m.Called(ctx, sourceType, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GlobalMedia), args.Error(1)
}
