package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickpoll/internal/domain/poll"
)

const selectPoll = `
        SELECT p.id, p.title, p.description, p.creator_id, p.is_active, p.created_at, p.updated_at,
               u.username, u.created_at
        FROM polls p
        JOIN users u ON u.id = p.creator_id
    `

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

// Create inserts the poll and its options in one transaction, so no reader
// ever sees a poll without options.
func (r *PollRepo) Create(ctx context.Context, p *poll.Poll, options []poll.Option) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPoll := `
        INSERT INTO polls (title, description, creator_id)
        VALUES ($1, $2, $3)
        RETURNING id, is_active, created_at, updated_at
    `
	err = tx.QueryRowContext(ctx, queryPoll, p.Title, p.Description, p.CreatorID).
		Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}

	queryOpt := `
        INSERT INTO poll_options (poll_id, text, position)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	for i := range options {
		options[i].PollID = p.ID
		options[i].Position = i
		if err := tx.QueryRowContext(ctx, queryOpt, p.ID, options[i].Text, i).
			Scan(&options[i].ID, &options[i].CreatedAt); err != nil {
			if uniqueViolationOn(err, "uq_poll_options_text") {
				return poll.ErrDuplicateOption
			}
			return fmt.Errorf("insert option: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Poll, error) {
	p, err := scanPoll(r.db.QueryRowContext(ctx, selectPoll+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, poll.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select poll: %w", err)
	}
	return p, nil
}

func (r *PollRepo) Options(ctx context.Context, pollID int64) ([]poll.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, poll_id, text, position, created_at
        FROM poll_options WHERE poll_id = $1
        ORDER BY position
    `, pollID)
	if err != nil {
		return nil, fmt.Errorf("select options: %w", err)
	}
	defer rows.Close()

	opts := []poll.Option{}
	for rows.Next() {
		var o poll.Option
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text, &o.Position, &o.CreatedAt); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (r *PollRepo) ListActive(ctx context.Context, skip, limit int) ([]poll.Poll, error) {
	rows, err := r.db.QueryContext(ctx, selectPoll+`
        WHERE p.is_active
        ORDER BY p.created_at DESC, p.id DESC
        OFFSET $1 LIMIT $2
    `, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	defer rows.Close()

	res := []poll.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *PollRepo) Update(ctx context.Context, p *poll.Poll) error {
	err := r.db.QueryRowContext(ctx, `
        UPDATE polls SET title = $1, description = $2, updated_at = now()
        WHERE id = $3 AND is_active
        RETURNING updated_at
    `, p.Title, p.Description, p.ID).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return poll.ErrPollNotFound
	}
	return err
}

func (r *PollRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE polls SET is_active = FALSE, updated_at = now()
        WHERE id = $1 AND is_active
    `, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return poll.ErrPollNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPoll(row scanner) (*poll.Poll, error) {
	p := &poll.Poll{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.CreatorID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.Creator.Username, &p.Creator.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Creator.ID = p.CreatorID
	return p, nil
}
