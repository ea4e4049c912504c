package repository

import (
	"context"

	"uwaveapi/internal/model"
)

// UserRepository defines data access for users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate when the email or slug is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns users ordered by creation time.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)

	// Update persists username, slug, role, avatar and ban state.
	Update(ctx context.Context, u *model.User) (*model.User, error)
}
