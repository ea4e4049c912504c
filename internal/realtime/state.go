package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func activePlaylistKey(userID string) string { return "playlist:" + userID }
func muteKey(userID string) string           { return "mute:" + userID }
func sessionKey(userID string) string        { return "users:" + userID }

// State reads and writes per-user keys.
type State struct {
	rdb redis.Cmdable
}

func NewState(rdb redis.Cmdable) *State {
	return &State{rdb: rdb}
}

// ActivePlaylist returns the id of the user's active playlist, or "" when none is set.
func (s *State) ActivePlaylist(ctx context.Context, userID string) (string, error) {
	id, err := s.rdb.Get(ctx, activePlaylistKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return id, err
}

func (s *State) SetActivePlaylist(ctx context.Context, userID, playlistID string) error {
	return s.rdb.Set(ctx, activePlaylistKey(userID), playlistID, 0).Err()
}

// Mute silences a user for d. A non-positive d lifts the mute.
func (s *State) Mute(ctx context.Context, userID string, d time.Duration) error {
	if d <= 0 {
		return s.rdb.Del(ctx, muteKey(userID)).Err()
	}
	expires := time.Now().Add(d).UnixMilli()
	return s.rdb.Set(ctx, muteKey(userID), expires, d).Err()
}

func (s *State) IsMuted(ctx context.Context, userID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, muteKey(userID)).Result()
	return n > 0, err
}

// DeleteSession drops the socket session marker of a user.
func (s *State) DeleteSession(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}
