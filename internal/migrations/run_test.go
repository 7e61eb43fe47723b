package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-lens/internal/lib/testpg"
)

func TestRunMigrations(t *testing.T) {
	db, cleanup := testpg.Start(t)
	defer cleanup()

	err := Run(db, testpg.MigrationsPath(t))
	require.NoError(t, err)

	for _, table := range []string{"users", "articles", "publishers"} {
		var exists bool
		err = db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)
		`, table).Scan(&exists)
		require.NoError(t, err)
		require.Truef(t, exists, "table %q should exist", table)
	}

	var exists bool
	err = db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'users'
			AND indexname = 'idx_users_subscription_expiry'
		)
	`).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "expiry index should exist")
}

func TestMigrationIdempotency(t *testing.T) {
	db, cleanup := testpg.Start(t)
	defer cleanup()

	path := testpg.MigrationsPath(t)

	require.NoError(t, Run(db, path))
	require.NoError(t, Run(db, path), "running migrations twice should not fail")
}
