package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTestUser inserts a user row and returns its id, for repository tests
// that need to satisfy foreign keys.
func CreateTestUser(t *testing.T, db *pgxpool.Pool, username string) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $3) RETURNING id",
		uuid.New().String(), username, username,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return id
}
