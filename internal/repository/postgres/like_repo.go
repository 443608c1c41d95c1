package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"quickpoll/internal/domain/like"
)

type LikeRepo struct {
	db *sql.DB
}

func NewLikeRepo(db *sql.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

func (r *LikeRepo) PollActive(ctx context.Context, pollID int64) (bool, error) {
	return pollActive(ctx, r.db, pollID)
}

func (r *LikeRepo) Add(ctx context.Context, pollID, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO poll_likes (user_id, poll_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, poll_id) DO NOTHING
    `, userID, pollID)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return affected(res, like.ErrAlreadyLiked)
}

func (r *LikeRepo) Remove(ctx context.Context, pollID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM poll_likes WHERE user_id = $1 AND poll_id = $2`,
		userID, pollID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return affected(res, like.ErrNotLiked)
}

func (r *LikeRepo) Count(ctx context.Context, pollID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM poll_likes WHERE poll_id = $1`, pollID).Scan(&n)
	return n, err
}

func (r *LikeRepo) IsLiked(ctx context.Context, pollID, userID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM poll_likes WHERE poll_id = $1 AND user_id = $2)`,
		pollID, userID,
	).Scan(&ok)
	return ok, err
}

func affected(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}
