package poll

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"quickpoll/internal/metrics"
)

var tracer = otel.Tracer("quickpoll/poll")

// Aggregator builds the Detail read-model. Counts are exact and read from the
// store on every call; nothing here is cached.
type Aggregator struct {
	polls Repository
	votes VoteTally
	likes LikeTally
}

func NewAggregator(polls Repository, votes VoteTally, likes LikeTally) *Aggregator {
	return &Aggregator{polls: polls, votes: votes, likes: likes}
}

// Aggregate computes the read-model of p for viewerID; zero means anonymous.
func (a *Aggregator) Aggregate(ctx context.Context, p *Poll, viewerID int64) (_ *Detail, err error) {
	ctx, span := tracer.Start(ctx, "poll.Aggregate", trace.WithAttributes(
		attribute.Int64("poll.id", p.ID),
		attribute.Bool("viewer.authenticated", viewerID != 0),
	))
	start := time.Now()
	defer func() {
		metrics.ObserveAggregation(time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	opts, err := a.polls.Options(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	counts, err := a.votes.CountByPoll(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	results := make([]OptionResult, 0, len(opts))
	var total int64
	for _, o := range opts {
		c := counts[o.ID]
		total += c
		results = append(results, OptionResult{ID: o.ID, Text: o.Text, VoteCount: c})
	}

	likeCount, err := a.likes.Count(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		Creator:     p.Creator,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Options:     results,
		TotalVotes:  total,
		LikeCount:   likeCount,
	}

	if viewerID == 0 {
		return d, nil
	}
	if d.UserVoted, err = a.votes.ChoiceOf(ctx, p.ID, viewerID); err != nil {
		return nil, err
	}
	if d.UserLiked, err = a.likes.IsLiked(ctx, p.ID, viewerID); err != nil {
		return nil, err
	}
	return d, nil
}
