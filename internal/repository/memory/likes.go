package memory

import (
	"context"

	"quickpoll/internal/domain/like"
)

type LikeRepo struct{ s *Store }

func (r *LikeRepo) PollActive(_ context.Context, pollID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.pollActive(pollID), nil
}

func (r *LikeRepo) Add(_ context.Context, pollID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{pollID, userID}
	if _, ok := r.s.likes[key]; ok {
		return like.ErrAlreadyLiked
	}
	r.s.likes[key] = struct{}{}
	return nil
}

func (r *LikeRepo) Remove(_ context.Context, pollID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{pollID, userID}
	if _, ok := r.s.likes[key]; !ok {
		return like.ErrNotLiked
	}
	delete(r.s.likes, key)
	return nil
}

func (r *LikeRepo) Count(_ context.Context, pollID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for key := range r.s.likes {
		if key.pollID == pollID {
			n++
		}
	}
	return n, nil
}

func (r *LikeRepo) IsLiked(_ context.Context, pollID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.likes[pair{pollID, userID}]
	return ok, nil
}
