package cached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpoll/internal/domain/poll"
	"quickpoll/internal/platform/cache"
	"quickpoll/internal/repository/memory"
)

type countingRepo struct {
	poll.Repository
	optionCalls int
}

func (c *countingRepo) Options(ctx context.Context, pollID int64) ([]poll.Option, error) {
	c.optionCalls++
	return c.Repository.Options(ctx, pollID)
}

func setup(t *testing.T) (*miniredis.Miniredis, *countingRepo, *PollRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := memory.New()
	inner := &countingRepo{Repository: store.Polls()}
	return mr, inner, NewPollRepo(inner, cache.NewWithClient(client, "test:"), time.Minute, nil)
}

func createPoll(t *testing.T, repo poll.Repository) int64 {
	t.Helper()
	p := &poll.Poll{Title: "Lunch?", CreatorID: 1}
	require.NoError(t, repo.Create(context.Background(), p, []poll.Option{{Text: "Pizza"}, {Text: "Sushi"}}))
	return p.ID
}

func TestOptions_ReadThrough(t *testing.T) {
	mr, inner, repo := setup(t)
	ctx := context.Background()
	id := createPoll(t, repo)

	first, err := repo.Options(ctx, id)
	require.NoError(t, err)
	second, err := repo.Options(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.optionCalls)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "Sushi", second[1].Text)
	assert.True(t, mr.Exists("test:"+optionsKey(id)))
}

func TestOptions_ExpiresAfterTTL(t *testing.T) {
	mr, inner, repo := setup(t)
	ctx := context.Background()
	id := createPoll(t, repo)

	_, err := repo.Options(ctx, id)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = repo.Options(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.optionCalls)
}

func TestOptions_EmptyNotCached(t *testing.T) {
	mr, _, repo := setup(t)

	opts, err := repo.Options(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, opts)
	assert.False(t, mr.Exists("test:"+optionsKey(404)))
}

func TestOptions_RedisDownFallsBack(t *testing.T) {
	mr, inner, repo := setup(t)
	id := createPoll(t, repo)
	mr.Close()

	opts, err := repo.Options(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, 1, inner.optionCalls)
}

func TestOtherMethodsPassThrough(t *testing.T) {
	_, _, repo := setup(t)
	ctx := context.Background()
	id := createPoll(t, repo)

	require.NoError(t, repo.Deactivate(ctx, id))
	p, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, p.IsActive)
}
