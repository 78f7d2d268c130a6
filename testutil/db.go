// Package testutil holds the Postgres plumbing shared by integration tests.
// Everything here is keyed on TEST_DATABASE_URL; tests that need a database
// skip themselves when it is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/smarttravel/migrations"
)

// EnvDSN names the variable that points the integration suite at Postgres.
const EnvDSN = "TEST_DATABASE_URL"

// RunMigrated brings the test schema up to date and then runs the package's
// tests. Use it from TestMain:
//
//	func TestMain(m *testing.M) { os.Exit(testutil.RunMigrated(m)) }
//
// Without a DSN the tests run unmigrated and skip themselves.
func RunMigrated(m *testing.M) int {
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		return m.Run()
	}
	if err := migrateUp(context.Background(), dsn); err != nil {
		log.Printf("testutil.RunMigrated: %v", err)
		return 1
	}
	return m.Run()
}

func migrateUp(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// NewPool opens a pool on the test database, closed when the test ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when the test finishes.
// Repos built on the same tx see each other's rows, so trips, deals and
// chat logs can reference one another without leaking into other tests.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB opens a database/sql handle for driving goose directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip(EnvDSN + " not set; skipping integration test")
	}
	return dsn
}
