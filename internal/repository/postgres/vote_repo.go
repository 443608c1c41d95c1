package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickpoll/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

func (r *VoteRepo) PollActive(ctx context.Context, pollID int64) (bool, error) {
	return pollActive(ctx, r.db, pollID)
}

func (r *VoteRepo) OptionInPoll(ctx context.Context, pollID, optionID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM poll_options WHERE id = $1 AND poll_id = $2)`,
		optionID, pollID,
	).Scan(&ok)
	return ok, err
}

func (r *VoteRepo) HasVoted(ctx context.Context, pollID, userID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM votes WHERE poll_id = $1 AND user_id = $2)`,
		pollID, userID,
	).Scan(&ok)
	return ok, err
}

// Create inserts only while the poll is active and the option belongs to it.
// uq_votes_user_poll settles concurrent inserts for the same user and poll.
func (r *VoteRepo) Create(ctx context.Context, v *vote.Vote) error {
	query := `
        INSERT INTO votes (user_id, poll_id, option_id)
        SELECT $1, o.poll_id, o.id
        FROM poll_options o
        JOIN polls p ON p.id = o.poll_id
        WHERE o.id = $3 AND o.poll_id = $2 AND p.is_active
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, v.UserID, v.PollID, v.OptionID).Scan(&v.ID, &v.CreatedAt)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return vote.ErrPollNotFound
	case uniqueViolationOn(err, "uq_votes_user_poll"):
		return vote.ErrAlreadyVoted
	default:
		return fmt.Errorf("insert vote: %w", err)
	}
}

func (r *VoteRepo) CountByPoll(ctx context.Context, pollID int64) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT option_id, COUNT(*)
        FROM votes WHERE poll_id = $1
        GROUP BY option_id
    `, pollID)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	defer rows.Close()

	res := make(map[int64]int64)
	for rows.Next() {
		var optionID, n int64
		if err := rows.Scan(&optionID, &n); err != nil {
			return nil, err
		}
		res[optionID] = n
	}
	return res, rows.Err()
}

func (r *VoteRepo) ChoiceOf(ctx context.Context, pollID, userID int64) (*int64, error) {
	var optionID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT option_id FROM votes WHERE poll_id = $1 AND user_id = $2`,
		pollID, userID,
	).Scan(&optionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &optionID, nil
}

func pollActive(ctx context.Context, db *sql.DB, pollID int64) (bool, error) {
	var ok bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM polls WHERE id = $1 AND is_active)`,
		pollID,
	).Scan(&ok)
	return ok, err
}
