// Package realtime talks to the Redis instance shared with the socket server:
// it publishes commands on the v1 channel and keeps the small pieces of
// ephemeral state (active playlists, mutes, sessions, booth) the API touches.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel socket servers subscribe to.
const Channel = "v1"

// Command is the envelope every message on Channel uses.
type Command struct {
	Command string `json:"command"`
	Data    any    `json:"data"`
}

// Bus publishes commands to Channel.
type Bus struct {
	rdb redis.Cmdable
}

// NewBus creates a Bus on top of a Redis client.
func NewBus(rdb redis.Cmdable) *Bus {
	return &Bus{rdb: rdb}
}

// Publish encodes command and data and publishes them on Channel.
func (b *Bus) Publish(ctx context.Context, command string, data any) error {
	payload, err := json.Marshal(Command{Command: command, Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s command: %w", command, err)
	}
	if err := b.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s command: %w", command, err)
	}
	return nil
}
