package like

import "context"

// Repository stores the user-poll like membership set. Add and Remove are
// single atomic statements: Add reports ErrAlreadyLiked when the pair already
// exists and Remove reports ErrNotLiked when it does not.
type Repository interface {
	PollActive(ctx context.Context, pollID int64) (bool, error)
	Add(ctx context.Context, pollID, userID int64) error
	Remove(ctx context.Context, pollID, userID int64) error
	Count(ctx context.Context, pollID int64) (int64, error)
	IsLiked(ctx context.Context, pollID, userID int64) (bool, error)
}
