package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
	"uwaveapi/internal/repository"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.HistoryEntry], error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.HistoryEntry]), args.Error(1)
}
