package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}
