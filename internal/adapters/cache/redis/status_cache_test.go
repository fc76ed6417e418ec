package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"pet-boarding/internal/adapters/storage/memory"
	"pet-boarding/internal/domain/reservations"
	"pet-boarding/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo cuenta lecturas para verificar que el cache responde.
type countingRepo struct {
	reservations.StatusRepository
	byName int
}

func (r *countingRepo) GetByName(ctx context.Context, name string) (reservations.Status, error) {
	r.byName++
	return r.StatusRepository.GetByName(ctx, name)
}

func seeded(t *testing.T) *countingRepo {
	t.Helper()
	repo := memory.NewStatusRepo()
	require.NoError(t, repo.Create(context.Background(), reservations.Status{ID: "s-1", Name: "Pending"}))
	return &countingRepo{StatusRepository: repo}
}

func TestStatusCache_FallsBackWhenRedisIsDown(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	repo := seeded(t)
	c := NewStatusCache(repo, client, time.Minute, logger.Nop())

	st, err := c.GetByName(context.Background(), "pending")
	require.NoError(t, err)
	assert.Equal(t, "s-1", st.ID)

	_, err = c.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, reservations.ErrNotFound)
}

func TestStatusCache_ServesFromRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := NewClient(addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Del(ctx, listKey(), nameKey("Pending"), idKey("s-1")).Err())

	repo := seeded(t)
	c := NewStatusCache(repo, client, time.Minute, logger.Nop())

	for i := 0; i < 3; i++ {
		st, err := c.GetByName(ctx, "Pending")
		require.NoError(t, err)
		assert.Equal(t, "s-1", st.ID)
	}
	assert.Equal(t, 1, repo.byName)

	require.NoError(t, c.Create(ctx, reservations.Status{ID: "s-2", Name: "Confirmed"}))
	items, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
