// Package cached decorates repositories with a Redis read-through cache.
package cached

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"quickpoll/internal/domain/poll"
	"quickpoll/internal/platform/cache"
)

// PollRepo caches option lists, which never change after a poll is created.
// Everything else goes straight to the wrapped repository so counts and poll
// fields are always read fresh.
type PollRepo struct {
	poll.Repository
	cache  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewPollRepo(next poll.Repository, c *cache.Cache, ttl time.Duration, logger *slog.Logger) *PollRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollRepo{Repository: next, cache: c, ttl: ttl, logger: logger}
}

func optionsKey(pollID int64) string {
	return "poll:" + strconv.FormatInt(pollID, 10) + ":options"
}

func (r *PollRepo) Options(ctx context.Context, pollID int64) ([]poll.Option, error) {
	key := optionsKey(pollID)

	var opts []poll.Option
	found, err := r.cache.GetJSON(ctx, key, &opts)
	if err != nil {
		r.logger.Warn("options cache read failed", "poll_id", pollID, "err", err)
	}
	if found {
		return opts, nil
	}

	opts, err = r.Repository.Options(ctx, pollID)
	if err != nil {
		return nil, err
	}
	// an empty list means the poll does not exist yet; never pin that
	if len(opts) == 0 {
		return opts, nil
	}
	if err := r.cache.SetJSON(ctx, key, opts, r.ttl); err != nil {
		r.logger.Warn("options cache write failed", "poll_id", pollID, "err", err)
	}
	return opts, nil
}
