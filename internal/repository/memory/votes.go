package memory

import (
	"context"

	"quickpoll/internal/domain/vote"
)

type VoteRepo struct{ s *Store }

func (r *VoteRepo) PollActive(_ context.Context, pollID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.pollActive(pollID), nil
}

func (r *VoteRepo) OptionInPoll(_ context.Context, pollID, optionID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owner, ok := r.s.optionPoll[optionID]
	return ok && owner == pollID, nil
}

func (r *VoteRepo) HasVoted(_ context.Context, pollID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.votes[pair{pollID, userID}]
	return ok, nil
}

func (r *VoteRepo) Create(_ context.Context, v *vote.Vote) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pollActive(v.PollID) || s.optionPoll[v.OptionID] != v.PollID {
		return vote.ErrPollNotFound
	}
	key := pair{v.PollID, v.UserID}
	if _, ok := s.votes[key]; ok {
		return vote.ErrAlreadyVoted
	}

	s.nextVoteID++
	v.ID = s.nextVoteID
	v.CreatedAt = s.now()
	stored := *v
	s.votes[key] = &stored
	return nil
}

func (r *VoteRepo) CountByPoll(_ context.Context, pollID int64) (map[int64]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make(map[int64]int64)
	for key, v := range r.s.votes {
		if key.pollID == pollID {
			res[v.OptionID]++
		}
	}
	return res, nil
}

func (r *VoteRepo) ChoiceOf(_ context.Context, pollID, userID int64) (*int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.votes[pair{pollID, userID}]
	if !ok {
		return nil, nil
	}
	optionID := v.OptionID
	return &optionID, nil
}
