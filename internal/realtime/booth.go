package realtime

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	currentDJKey = "booth:currentDJ"
	waitlistKey  = "waitlist"
)

// ErrNotInWaitlist is returned by LeaveWaitlist for users that are not waiting.
var ErrNotInWaitlist = errors.New("user is not in the waitlist")

// Booth exposes the two booth operations the API needs. Turn order itself is
// managed by the socket server.
type Booth struct {
	rdb redis.Cmdable
	bus *Bus
}

func NewBooth(rdb redis.Cmdable, bus *Bus) *Booth {
	return &Booth{rdb: rdb, bus: bus}
}

// SkipIfCurrentDJ asks the booth to advance when userID is playing.
// It reports whether a skip was requested.
func (b *Booth) SkipIfCurrentDJ(ctx context.Context, userID string) (bool, error) {
	dj, err := b.rdb.Get(ctx, currentDJKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if dj != userID {
		return false, nil
	}
	if err := b.bus.Publish(ctx, "advance", map[string]string{"userID": userID}); err != nil {
		return false, err
	}
	return true, nil
}

// LeaveWaitlist removes userID from the waitlist and announces the new list.
func (b *Booth) LeaveWaitlist(ctx context.Context, userID string) error {
	removed, err := b.rdb.LRem(ctx, waitlistKey, 0, userID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotInWaitlist
	}
	waitlist, err := b.rdb.LRange(ctx, waitlistKey, 0, -1).Result()
	if err != nil {
		return err
	}
	return b.bus.Publish(ctx, "waitlistLeave", map[string]any{
		"userID":   userID,
		"waitlist": waitlist,
	})
}
