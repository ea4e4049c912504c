package repository

import (
	"context"

	"uwaveapi/internal/model"
)

// MediaRepository defines data access for provider metadata.
type MediaRepository interface {
	FindBySource(ctx context.Context, sourceType, sourceID string) (*model.GlobalMedia, error)

	// Create stores m, returning the existing row when the source is already known.
	Create(ctx context.Context, m *model.GlobalMedia) (*model.GlobalMedia, error)
}
