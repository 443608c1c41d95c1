package like

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrAlreadyLiked = errors.New("poll already liked")
	ErrNotLiked     = errors.New("poll not liked")
)

var tracer = otel.Tracer("quickpoll/like")

// Service neither returns nor caches counts; callers re-read the aggregate.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Like(ctx context.Context, userID, pollID int64) error {
	ctx, span := tracer.Start(ctx, "like.Like", trace.WithAttributes(attribute.Int64("poll.id", pollID)))
	defer span.End()

	if err := s.ensurePoll(ctx, pollID); err != nil {
		return err
	}
	return s.repo.Add(ctx, pollID, userID)
}

func (s *Service) Unlike(ctx context.Context, userID, pollID int64) error {
	ctx, span := tracer.Start(ctx, "like.Unlike", trace.WithAttributes(attribute.Int64("poll.id", pollID)))
	defer span.End()

	if err := s.ensurePoll(ctx, pollID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, pollID, userID)
}

func (s *Service) ensurePoll(ctx context.Context, pollID int64) error {
	ok, err := s.repo.PollActive(ctx, pollID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPollNotFound
	}
	return nil
}
