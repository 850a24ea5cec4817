package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"quizbox/internal/domain"
)

// LeaderboardMirror keeps a best-effort copy of the standings in a
// Redis sorted set so external dashboards can read them without
// touching the game engine. The engine never reads this back.
type LeaderboardMirror struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardMirror(client *redis.Client, ttl time.Duration) *LeaderboardMirror {
	return &LeaderboardMirror{client: client, ttl: ttl}
}

func (m *LeaderboardMirror) Publish(ctx context.Context, pin string, entries []domain.LeaderboardEntry) error {
	key := m.key(pin)

	pipe := m.client.Pipeline()
	pipe.Del(ctx, key)
	for _, e := range entries {
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(e.Score),
			Member: e.Icon + " " + e.Name,
		})
	}
	if m.ttl > 0 {
		pipe.Expire(ctx, key, m.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (m *LeaderboardMirror) Clear(ctx context.Context, pin string) error {
	return m.client.Del(ctx, m.key(pin)).Err()
}

func (m *LeaderboardMirror) key(pin string) string {
	return "quiz:room:" + pin + ":board"
}
