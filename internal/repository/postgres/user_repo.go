package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickpoll/internal/domain/user"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
        INSERT INTO users (username, email, password_hash, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.IsActive).
		Scan(&u.ID, &u.CreatedAt)
	switch {
	case err == nil:
		return nil
	case uniqueViolationOn(err, "users_username_key"):
		return user.ErrUsernameTaken
	case uniqueViolationOn(err, "users_email_key"):
		return user.ErrEmailTaken
	default:
		return fmt.Errorf("insert user: %w", err)
	}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
        SELECT id, username, email, password_hash, is_active, created_at
        FROM users WHERE username = $1
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
        SELECT id, username, email, password_hash, is_active, created_at
        FROM users WHERE id = $1
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
