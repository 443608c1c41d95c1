// Package memory keeps every repository in process memory behind a single
// mutex. Each method is one critical section, which gives the same
// all-or-nothing behaviour the PostgreSQL repositories get from transactions
// and constraints.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"quickpoll/internal/domain/poll"
	"quickpoll/internal/domain/user"
	"quickpoll/internal/domain/vote"
)

type pair struct {
	pollID int64
	userID int64
}

type Store struct {
	mu sync.Mutex

	users   map[int64]*user.User
	byName  map[string]int64
	byEmail map[string]int64

	polls      map[int64]*poll.Poll
	options    map[int64][]poll.Option
	optionPoll map[int64]int64

	votes map[pair]*vote.Vote
	likes map[pair]struct{}

	nextUserID   int64
	nextPollID   int64
	nextOptionID int64
	nextVoteID   int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:      make(map[int64]*user.User),
		byName:     make(map[string]int64),
		byEmail:    make(map[string]int64),
		polls:      make(map[int64]*poll.Poll),
		options:    make(map[int64][]poll.Option),
		optionPoll: make(map[int64]int64),
		votes:      make(map[pair]*vote.Vote),
		likes:      make(map[pair]struct{}),
		now:        time.Now,
	}
}

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) Polls() *PollRepo { return &PollRepo{s: s} }
func (s *Store) Votes() *VoteRepo { return &VoteRepo{s: s} }
func (s *Store) Likes() *LikeRepo { return &LikeRepo{s: s} }

// pollActive must be called with s.mu held.
func (s *Store) pollActive(pollID int64) bool {
	p, ok := s.polls[pollID]
	return ok && p.IsActive
}

// withCreator must be called with s.mu held.
func (s *Store) withCreator(p poll.Poll) poll.Poll {
	if u, ok := s.users[p.CreatorID]; ok {
		p.Creator = poll.Creator{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
	}
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}

	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.now()
	stored := *u
	s.users[u.ID] = &stored
	s.byName[u.Username] = u.ID
	s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u := *stored
	return &u, nil
}

// SetActive flips a user's active flag; there is no API for it, tests use it.
func (r *UserRepo) SetActive(id int64, active bool) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsActive = active
	}
}

type PollRepo struct{ s *Store }

func (r *PollRepo) Create(_ context.Context, p *poll.Poll, options []poll.Option) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.nextPollID++
	p.ID = s.nextPollID
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := make([]poll.Option, len(options))
	for i := range options {
		s.nextOptionID++
		options[i].ID = s.nextOptionID
		options[i].PollID = p.ID
		options[i].Position = i
		options[i].CreatedAt = now
		stored[i] = options[i]
		s.optionPoll[options[i].ID] = p.ID
	}

	cp := *p
	s.polls[p.ID] = &cp
	s.options[p.ID] = stored
	return nil
}

func (r *PollRepo) GetByID(_ context.Context, id int64) (*poll.Poll, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return nil, poll.ErrPollNotFound
	}
	out := s.withCreator(*p)
	return &out, nil
}

func (r *PollRepo) Options(_ context.Context, pollID int64) ([]poll.Option, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := make([]poll.Option, len(s.options[pollID]))
	copy(opts, s.options[pollID])
	return opts, nil
}

func (r *PollRepo) ListActive(_ context.Context, skip, limit int) ([]poll.Poll, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]poll.Poll, 0, len(s.polls))
	for _, p := range s.polls {
		if p.IsActive {
			res = append(res, s.withCreator(*p))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })

	if skip >= len(res) {
		return []poll.Poll{}, nil
	}
	res = res[skip:]
	if limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}

func (r *PollRepo) Update(_ context.Context, p *poll.Poll) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.polls[p.ID]
	if !ok || !stored.IsActive {
		return poll.ErrPollNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.UpdatedAt = s.now()
	p.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *PollRepo) Deactivate(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.polls[id]
	if !ok || !stored.IsActive {
		return poll.ErrPollNotFound
	}
	stored.IsActive = false
	stored.UpdatedAt = s.now()
	return nil
}
