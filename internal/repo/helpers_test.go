package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-match/backend/testutil"
)

// newTx is a rolled-back transaction every repo in one test shares.
func newTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// insertUser writes a users row directly. The service never writes users, so
// fixtures bypass the repo.
func insertUser(t *testing.T, tx pgx.Tx, username, userType, city, state string) uuid.UUID {
	t.Helper()
	const q = `
		INSERT INTO users (username, name, user_type, hometown_city, hometown_state, hometown_country)
		VALUES (@username, @name, @user_type, @city, @state, 'United States')
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(context.Background(), q, pgx.NamedArgs{
		"username":  username,
		"name":      username,
		"user_type": userType,
		"city":      city,
		"state":     state,
	}).Scan(&id)
	require.NoError(t, err, "insert user fixture")
	return id
}
