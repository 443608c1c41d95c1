package vote

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidOption = errors.New("option does not belong to poll")
	ErrAlreadyVoted  = errors.New("user already voted in this poll")
)

var tracer = otel.Tracer("quickpoll/vote")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Cast records userID's vote for optionID in pollID. Preconditions are checked
// in order: active poll, option of that poll, no earlier vote. The final
// uniqueness guarantee comes from Repository.Create, not from the pre-check.
func (s *Service) Cast(ctx context.Context, userID, pollID, optionID int64) (*Vote, error) {
	ctx, span := tracer.Start(ctx, "vote.Cast", trace.WithAttributes(
		attribute.Int64("poll.id", pollID),
		attribute.Int64("option.id", optionID),
	))
	defer span.End()

	active, err := s.repo.PollActive(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrPollNotFound
	}

	ok, err := s.repo.OptionInPoll(ctx, pollID, optionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOption
	}

	voted, err := s.repo.HasVoted(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	v := &Vote{
		UserID:   userID,
		PollID:   pollID,
		OptionID: optionID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return v, nil
}
