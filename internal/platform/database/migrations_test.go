package database

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	body, err := fs.ReadFile(migrations, "migrations/"+entries[0].Name())
	require.NoError(t, err)
	sql := string(body)

	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	// one vote per (user, poll) and one like per (user, poll) live in the schema
	assert.Contains(t, sql, "UNIQUE (user_id, poll_id)")
	assert.Contains(t, sql, "PRIMARY KEY (user_id, poll_id)")
	for _, table := range []string{"users", "polls", "poll_options", "votes", "poll_likes"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" "), table)
	}
}

func TestFatalConnectError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"bad password", &pgconn.PgError{Code: "28P01"}, true},
		{"no such database", fmt.Errorf("connect: %w", &pgconn.PgError{Code: "3D000"}), true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, false},
		{"network", errors.New("dial tcp: connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fatalConnectError(tc.err))
		})
	}
}
