package testutil_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttravel/internal/dealgen"
	"github.com/pkordes/smarttravel/migrations"
	"github.com/pkordes/smarttravel/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunMigrated(m))
}

var schemaTables = []string{"trips", "deals", "agent_logs", "agents", "chat_logs"}

// TestMigrations resets the schema, applies every migration, checks the
// tables and agent seed, then rolls all the way back. The schema is brought
// up again on cleanup so packages sharing the database are unaffected.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	p, err := migrations.NewProvider(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if _, err := p.Up(context.Background()); err != nil {
			t.Errorf("restore schema: %v", err)
		}
	})

	_, err = p.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := p.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, 3)

	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "table %q after up", table)
	}
	assert.ElementsMatch(t, dealgen.PersonaNames(), seededAgents(t, db))

	_, err = p.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "table %q after down", table)
	}
}

func TestMigrations_TripDateConstraint(t *testing.T) {
	db := testutil.NewSQLDB(t)

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO trips (destination, duration, travel_type, budget, departure_date, return_date)
		VALUES ('Bali', '1 week', 'solo', 'budget', '2026-12-10', '2026-12-01')`)
	assert.Error(t, err, "return before departure must be rejected")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}

func seededAgents(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), `SELECT name FROM agents`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}
