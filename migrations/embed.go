// Package migrations embeds the goose SQL migrations for the SmartTravel
// schema and the seeded agent roster.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS

// NewProvider returns a goose provider for the embedded migrations.
// The API server, travelctl and the integration tests all migrate through it.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("migrations.NewProvider: %w", err)
	}
	return p, nil
}
