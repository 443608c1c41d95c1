package poll

import (
	"context"
	"errors"
)

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrForbidden    = errors.New("only the poll creator may modify it")
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

type Service struct {
	repo Repository
	agg  *Aggregator
}

func NewService(repo Repository, votes VoteTally, likes LikeTally) *Service {
	return &Service{repo: repo, agg: NewAggregator(repo, votes, likes)}
}

// Create validates in and stores the poll with all its options atomically.
// The returned aggregate is personalised for the creator.
func (s *Service) Create(ctx context.Context, creatorID int64, in CreateInput) (*Detail, error) {
	title, texts, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	p := &Poll{
		Title:       title,
		Description: in.Description,
		CreatorID:   creatorID,
		IsActive:    true,
	}
	opts := make([]Option, len(texts))
	for i, text := range texts {
		opts[i] = Option{Text: text, Position: i}
	}

	if err := s.repo.Create(ctx, p, opts); err != nil {
		return nil, err
	}

	// re-read so the creator profile is filled in
	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.agg.Aggregate(ctx, created, creatorID)
}

// Get returns the aggregate of an active poll. Soft-deleted polls are not found.
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*Detail, error) {
	p, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.agg.Aggregate(ctx, p, viewerID)
}

func (s *Service) List(ctx context.Context, skip, limit int, viewerID int64) ([]Detail, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	polls, err := s.repo.ListActive(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	res := make([]Detail, 0, len(polls))
	for i := range polls {
		d, err := s.agg.Aggregate(ctx, &polls[i], viewerID)
		if err != nil {
			return nil, err
		}
		res = append(res, *d)
	}
	return res, nil
}

// Update changes title and/or description. Omitted fields are kept; an explicit
// null clears the description and is rejected for the title.
func (s *Service) Update(ctx context.Context, id, actorID int64, in UpdateInput) (*Detail, error) {
	p, err := s.owned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if in.Title.Set {
		if in.Title.Value == nil {
			return nil, ErrTitleLength
		}
		title, err := normalizeTitle(*in.Title.Value)
		if err != nil {
			return nil, err
		}
		p.Title = title
	}
	if in.Description.Set {
		if err := checkDescription(in.Description.Value); err != nil {
			return nil, err
		}
		p.Description = in.Description.Value
	}

	if in.Title.Set || in.Description.Set {
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return s.agg.Aggregate(ctx, p, actorID)
}

// Delete soft-deletes the poll. Options, votes and likes are kept.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	if _, err := s.owned(ctx, id, actorID); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) active(ctx context.Context, id int64) (*Poll, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrPollNotFound
	}
	return p, nil
}

func (s *Service) owned(ctx context.Context, id, actorID int64) (*Poll, error) {
	p, err := s.active(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatorID != actorID {
		return nil, ErrForbidden
	}
	return p, nil
}
