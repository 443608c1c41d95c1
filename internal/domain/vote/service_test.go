package vote_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickpoll/internal/domain/poll"
	"quickpoll/internal/domain/vote"
	"quickpoll/internal/repository/memory"
)

func seedPoll(t *testing.T, store *memory.Store, texts ...string) (*poll.Poll, []poll.Option) {
	t.Helper()
	p := &poll.Poll{Title: "Where to eat?", CreatorID: 1}
	opts := make([]poll.Option, len(texts))
	for i, text := range texts {
		opts[i] = poll.Option{Text: text}
	}
	require.NoError(t, store.Polls().Create(context.Background(), p, opts))
	return p, opts
}

func TestCast(t *testing.T) {
	store := memory.New()
	svc := vote.NewService(store.Votes())
	ctx := context.Background()

	p, opts := seedPoll(t, store, "Pizza", "Sushi")
	_, otherOpts := seedPoll(t, store, "Monday", "Friday")

	v, err := svc.Cast(ctx, 7, p.ID, opts[1].ID)
	require.NoError(t, err)
	assert.NotZero(t, v.ID)
	assert.Equal(t, int64(7), v.UserID)
	assert.False(t, v.CreatedAt.IsZero())

	_, err = svc.Cast(ctx, 7, p.ID, opts[0].ID)
	assert.ErrorIs(t, err, vote.ErrAlreadyVoted)

	_, err = svc.Cast(ctx, 8, p.ID, otherOpts[0].ID)
	assert.ErrorIs(t, err, vote.ErrInvalidOption)

	_, err = svc.Cast(ctx, 8, 9999, opts[0].ID)
	assert.ErrorIs(t, err, vote.ErrPollNotFound)

	counts, err := store.Votes().CountByPoll(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{opts[1].ID: 1}, counts)
}

func TestCast_PreconditionOrder(t *testing.T) {
	store := memory.New()
	svc := vote.NewService(store.Votes())
	ctx := context.Background()

	p, opts := seedPoll(t, store, "Pizza", "Sushi")
	_, err := svc.Cast(ctx, 7, p.ID, opts[0].ID)
	require.NoError(t, err)
	require.NoError(t, store.Polls().Deactivate(ctx, p.ID))

	// a closed poll wins over both the bad option and the earlier vote
	_, err = svc.Cast(ctx, 7, p.ID, 424242)
	assert.ErrorIs(t, err, vote.ErrPollNotFound)

	q, qOpts := seedPoll(t, store, "Tea", "Coffee")
	_, err = svc.Cast(ctx, 7, q.ID, qOpts[0].ID)
	require.NoError(t, err)
	// a foreign option wins over the earlier vote
	_, err = svc.Cast(ctx, 7, q.ID, opts[0].ID)
	assert.ErrorIs(t, err, vote.ErrInvalidOption)
}

func TestCast_ConcurrentSameUser(t *testing.T) {
	store := memory.New()
	svc := vote.NewService(store.Votes())
	p, opts := seedPoll(t, store, "Pizza", "Sushi")

	const n = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, dup   int
		unexpects []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Cast(context.Background(), 7, p.ID, opts[i%2].ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, vote.ErrAlreadyVoted):
				dup++
			default:
				unexpects = append(unexpects, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, unexpects)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

// staleChecks makes every pre-check pass, as if a concurrent request changed
// the store between the checks and the insert.
type staleChecks struct {
	vote.Repository
}

func (staleChecks) PollActive(context.Context, int64) (bool, error)          { return true, nil }
func (staleChecks) OptionInPoll(context.Context, int64, int64) (bool, error) { return true, nil }
func (staleChecks) HasVoted(context.Context, int64, int64) (bool, error)     { return false, nil }

func TestCast_StoreHasFinalSay(t *testing.T) {
	store := memory.New()
	svc := vote.NewService(staleChecks{store.Votes()})
	ctx := context.Background()
	p, opts := seedPoll(t, store, "Pizza", "Sushi")

	_, err := svc.Cast(ctx, 7, p.ID, opts[0].ID)
	require.NoError(t, err)
	_, err = svc.Cast(ctx, 7, p.ID, opts[1].ID)
	assert.ErrorIs(t, err, vote.ErrAlreadyVoted)

	require.NoError(t, store.Polls().Deactivate(ctx, p.ID))
	_, err = svc.Cast(ctx, 8, p.ID, opts[1].ID)
	assert.ErrorIs(t, err, vote.ErrPollNotFound)
}

type failingRepo struct {
	vote.Repository
}

func (failingRepo) PollActive(context.Context, int64) (bool, error) {
	return false, errors.New("connection refused")
}

func TestCast_StoreError(t *testing.T) {
	svc := vote.NewService(failingRepo{memory.New().Votes()})
	_, err := svc.Cast(context.Background(), 1, 1, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, vote.ErrPollNotFound)
}
