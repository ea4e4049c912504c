package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"uwaveapi/internal/model"
)

const (
	ownerID    = "11111111-1111-4111-8111-111111111111"
	otherID    = "22222222-2222-4222-8222-222222222222"
	playlistID = "33333333-3333-4333-8333-333333333333"
	targetID   = "44444444-4444-4444-8444-444444444444"
	itemA      = "55555555-5555-4555-8555-555555555555"
	itemB      = "66666666-6666-4666-8666-666666666666"
	mediaID    = "77777777-7777-4777-8777-777777777777"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, command string, data any) error {
	args := m.Called(ctx, command, data)
	return args.Error(0)
}

type mockSource struct {
	mock.Mock
	name string
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Search(ctx context.Context, query string) ([]model.GlobalMedia, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GlobalMedia), args.Error(1)
}

func (m *mockSource) Fetch(ctx context.Context, sourceID string) (*model.GlobalMedia, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GlobalMedia), args.Error(1)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func owner() *model.User { return &model.User{ID: ownerID, Username: "alice", Role: model.RoleDefault} }
func other() *model.User { return &model.User{ID: otherID, Username: "bob", Role: model.RoleDefault} }
