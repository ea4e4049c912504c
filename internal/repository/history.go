package repository

import (
	"context"

	"uwaveapi/internal/model"
)

// HistoryRepository defines read access to play history.
type HistoryRepository interface {
	// ListByUser returns entries played by userID, most recent first.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.HistoryEntry], error)
}
