// Package redis keeps the leaderboard in a Redis sorted set.
//
// Keys:
//   - "lifesim:leaderboard:worth" is a sorted set of entry ID to net worth
//   - "lifesim:leaderboard:info" is a hash of entry ID to the entry as JSON
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tatianab/lifesim/internal/models"
)

const (
	keyWorth = "lifesim:leaderboard:worth"
	keyInfo  = "lifesim:leaderboard:info"
)

// Leaderboard is a models.Leaderboard on Redis.
type Leaderboard struct {
	client *redis.Client
	prefix string
}

var _ models.Leaderboard = (*Leaderboard)(nil)

// Connect dials addr and checks the server answers.
func Connect(ctx context.Context, addr string) (*Leaderboard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 3 * time.Second,
		ReadTimeout: 2 * time.Second,
		MaxRetries:  2,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return NewLeaderboard(client), nil
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// WithPrefix namespaces every key, which lets tests share a server.
func (l *Leaderboard) WithPrefix(prefix string) *Leaderboard {
	return &Leaderboard{client: l.client, prefix: prefix}
}

func (l *Leaderboard) worthKey() string { return l.prefix + keyWorth }
func (l *Leaderboard) infoKey() string  { return l.prefix + keyInfo }

func (l *Leaderboard) Close() error { return l.client.Close() }

// Record scores the entry by net worth and stores its details.
func (l *Leaderboard) Record(ctx context.Context, e models.LeaderboardEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return &models.PersistenceError{Op: "record", Err: fmt.Errorf("marshal entry: %w", err)}
	}

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, l.worthKey(), redis.Z{Score: e.NetWorth, Member: e.ID})
	pipe.HSet(ctx, l.infoKey(), e.ID, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return &models.PersistenceError{Op: "record", Err: err}
	}
	return nil
}

// Top returns the n richest lives.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		return []models.LeaderboardEntry{}, nil
	}
	ids, err := l.client.ZRevRange(ctx, l.worthKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, &models.PersistenceError{Op: "top", Err: err}
	}
	if len(ids) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	data, err := l.client.HMGet(ctx, l.infoKey(), ids...).Result()
	if err != nil {
		return nil, &models.PersistenceError{Op: "top", Err: err}
	}
	return decodeEntries(data), nil
}

// decodeEntries keeps ZRevRange order and skips entries whose details are
// missing or unreadable.
func decodeEntries(data []any) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(data))
	for _, v := range data {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var e models.LeaderboardEntry
		if err := json.Unmarshal([]byte(str), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
