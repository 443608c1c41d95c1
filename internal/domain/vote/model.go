package vote

import (
	"context"
	"time"
)

type Vote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PollID    int64     `json:"poll_id"`
	OptionID  int64     `json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists votes. Create must be atomic with respect to the
// (user, poll) pair: of two concurrent inserts for the same pair exactly one
// commits and the other gets ErrAlreadyVoted. Create also reports
// ErrPollNotFound if the poll was deactivated after the caller's checks.
type Repository interface {
	PollActive(ctx context.Context, pollID int64) (bool, error)
	OptionInPoll(ctx context.Context, pollID, optionID int64) (bool, error)
	HasVoted(ctx context.Context, pollID, userID int64) (bool, error)
	Create(ctx context.Context, v *Vote) error
	CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, error)
	ChoiceOf(ctx context.Context, pollID, userID int64) (*int64, error)
}
