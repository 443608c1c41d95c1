package poll

import (
	"context"
	"encoding/json"
	"time"
)

type Poll struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	Creator     Creator   `json:"creator"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Creator is the public part of the poll owner's profile.
type Creator struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID        int64     `json:"id"`
	PollID    int64     `json:"poll_id"`
	Text      string    `json:"text"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists polls and their options. Create stores the poll and all
// options in one transaction. GetByID returns inactive polls too and
// ErrPollNotFound when no row exists.
type Repository interface {
	Create(ctx context.Context, p *Poll, options []Option) error
	GetByID(ctx context.Context, id int64) (*Poll, error)
	Options(ctx context.Context, pollID int64) ([]Option, error)
	ListActive(ctx context.Context, skip, limit int) ([]Poll, error)
	Update(ctx context.Context, p *Poll) error
	Deactivate(ctx context.Context, id int64) error
}

// VoteTally is the read side of the vote store used by the aggregator.
type VoteTally interface {
	CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, error)
	ChoiceOf(ctx context.Context, pollID, userID int64) (*int64, error)
}

// LikeTally is the read side of the like store used by the aggregator.
type LikeTally interface {
	Count(ctx context.Context, pollID int64) (int64, error)
	IsLiked(ctx context.Context, pollID, userID int64) (bool, error)
}

type CreateInput struct {
	Title       string
	Description *string
	Options     []string
}

// NullableString tells an omitted JSON field (Set == false) from an explicit
// null (Set == true, Value == nil).
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func Some(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

type UpdateInput struct {
	Title       NullableString
	Description NullableString
}

type OptionResult struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

// Detail is the aggregate read-model of a poll as seen by one viewer.
type Detail struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	CreatorID   int64          `json:"creator_id"`
	Creator     Creator        `json:"creator"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Options     []OptionResult `json:"options"`
	TotalVotes  int64          `json:"total_votes"`
	LikeCount   int64          `json:"like_count"`
	UserVoted   *int64         `json:"user_voted"`
	UserLiked   bool           `json:"user_liked"`
}
