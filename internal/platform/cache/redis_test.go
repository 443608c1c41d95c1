package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, "test:"), mr
}

func TestSetThenGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var miss payload
	found, err := c.GetJSON(ctx, "k", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "pizza"}, time.Minute))
	assert.True(t, mr.Exists("test:k"), "keys are prefixed")

	var hit payload
	found, err = c.GetJSON(ctx, "k", &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pizza", hit.Name)
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "pizza"}, time.Minute))
	mr.FastForward(61 * time.Second)

	var dest payload
	found, err := c.GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCorruptEntryIsAnError(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("test:k", "{not json"))

	var dest payload
	found, err := c.GetJSON(context.Background(), "k", &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisDownReportsError(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var dest payload
	_, err := c.GetJSON(context.Background(), "k", &dest)
	assert.Error(t, err)
	assert.Error(t, c.SetJSON(context.Background(), "k", payload{}, time.Minute))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest payload
	found, err := c.GetJSON(ctx, "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(ctx, "k", payload{}, time.Minute))
	assert.NoError(t, c.Close())
}
