package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/lifesim/internal/models"
)

func entry(name string, worth float64) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		ID:       uuid.NewString(),
		Name:     name,
		Age:      40,
		NetWorth: worth,
		Major:    models.MajorCompSci,
		EndedAt:  time.Date(2024, 11, 12, 9, 0, 0, 0, time.UTC),
	}
}

func TestDecodeEntries(t *testing.T) {
	a, b := entry("Ann", 10), entry("Bo", 5)
	rawA, err := json.Marshal(a)
	require.NoError(t, err)
	rawB, err := json.Marshal(b)
	require.NoError(t, err)

	got := decodeEntries([]any{string(rawA), nil, "{broken", string(rawB)})

	require.Len(t, got, 2)
	assert.Equal(t, a, got[0])
	assert.Equal(t, b, got[1])
}

func TestKeysArePrefixed(t *testing.T) {
	lb := (&Leaderboard{}).WithPrefix("test:")
	assert.Equal(t, "test:lifesim:leaderboard:worth", lb.worthKey())
	assert.Equal(t, "test:lifesim:leaderboard:info", lb.infoKey())
}

// TestLeaderboardRedis runs against a real server when LIFESIM_TEST_REDIS_ADDR is set.
func TestLeaderboardRedis(t *testing.T) {
	addr := os.Getenv("LIFESIM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LIFESIM_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	base, err := Connect(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = base.Close() })

	lb := base.WithPrefix("test:" + uuid.NewString() + ":")
	t.Cleanup(func() { base.client.Del(ctx, lb.worthKey(), lb.infoKey()) })

	for _, e := range []models.LeaderboardEntry{entry("Ann", 100), entry("Bo", 9000), entry("Cy", -50)} {
		require.NoError(t, lb.Record(ctx, e))
	}

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Bo", top[0].Name)
	assert.Equal(t, "Ann", top[1].Name)

	empty, err := lb.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
