package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// NotificationGuard provides at-most-once delivery checks backed by Redis.
// Key format: notify:<subject_id>:<event_kind>
type NotificationGuard struct {
	client *redis.Client
}

// NewNotificationGuard creates a NotificationGuard wrapping the given client.
func NewNotificationGuard(client *redis.Client) *NotificationGuard {
	return &NotificationGuard{client: client}
}

// AlreadySent reports whether notifications for this subject/event pair have
// already been dispatched.
func (g *NotificationGuard) AlreadySent(ctx context.Context, subjectID, kind string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(subjectID, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("notification dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this subject/event pair has been dispatched (expires
// after dedupTTL).
func (g *NotificationGuard) Mark(ctx context.Context, subjectID, kind string) error {
	return g.client.Set(ctx, g.key(subjectID, kind), "1", dedupTTL).Err()
}

func (g *NotificationGuard) key(subjectID, kind string) string {
	return fmt.Sprintf("notify:%s:%s", subjectID, kind)
}
