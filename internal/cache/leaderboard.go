package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/arzan03/pointboard/internal/logging"
	"github.com/arzan03/pointboard/internal/models"
)

const leaderboardKey = "pointboard:leaderboard"

// LeaderboardCache holds the last computed leaderboard.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]models.PointsEntry, bool)
	Set(ctx context.Context, entries []models.PointsEntry)
	Invalidate(ctx context.Context)
}

// NewRedisClient connects and pings the server at addr.
func NewRedisClient(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisLeaderboard stores the leaderboard as one JSON value with a TTL.
// Errors are logged rather than returned; a cache miss falls through to Mongo.
type RedisLeaderboard struct {
	client *goredis.Client
	ttl    time.Duration
	log    logging.Logger
}

func NewRedisLeaderboard(client *goredis.Client, ttl time.Duration, log logging.Logger) *RedisLeaderboard {
	return &RedisLeaderboard{client: client, ttl: ttl, log: log}
}

func (c *RedisLeaderboard) Get(ctx context.Context) ([]models.PointsEntry, bool) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn(ctx, "leaderboard cache read failed", "err", err)
		}
		return nil, false
	}
	var entries []models.PointsEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.log.Warn(ctx, "leaderboard cache decode failed", "err", err)
		return nil, false
	}
	return entries, true
}

func (c *RedisLeaderboard) Set(ctx context.Context, entries []models.PointsEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		c.log.Warn(ctx, "leaderboard cache encode failed", "err", err)
		return
	}
	if err := c.client.Set(ctx, leaderboardKey, data, c.ttl).Err(); err != nil {
		c.log.Warn(ctx, "leaderboard cache write failed", "err", err)
	}
}

func (c *RedisLeaderboard) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		c.log.Warn(ctx, "leaderboard cache delete failed", "err", err)
	}
}
