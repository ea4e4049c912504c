package service

import (
	"context"
	"time"
)

// Publisher sends commands to the socket servers.
type Publisher interface {
	Publish(ctx context.Context, command string, data any) error
}

// PlaylistState tracks which playlist each user plays from.
type PlaylistState interface {
	ActivePlaylist(ctx context.Context, userID string) (string, error)
	SetActivePlaylist(ctx context.Context, userID, playlistID string) error
}

// UserState holds per-user ephemeral flags.
type UserState interface {
	Mute(ctx context.Context, userID string, d time.Duration) error
	DeleteSession(ctx context.Context, userID string) error
}

// Booth is the subset of the booth and waitlist the API drives.
type Booth interface {
	SkipIfCurrentDJ(ctx context.Context, userID string) (bool, error)
	LeaveWaitlist(ctx context.Context, userID string) error
}
