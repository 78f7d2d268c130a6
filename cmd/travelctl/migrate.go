package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/smarttravel/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
		Long: `Run the embedded goose migrations against DATABASE_URL.

Subcommands:
  up      - apply every pending migration
  down    - roll back the most recent migration
  status  - list migrations and whether they are applied`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, cmd *cobra.Command, p *goose.Provider) error {
				results, err := p.Up(ctx)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "OK   %s (%s)\n", r.Source.Path, r.Duration)
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, cmd *cobra.Command, p *goose.Provider) error {
				r, err := p.Down(ctx)
				if errors.Is(err, goose.ErrNoNextVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to roll back")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "DOWN %s (%s)\n", r.Source.Path, r.Duration)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: withProvider(func(ctx context.Context, cmd *cobra.Command, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
				for _, s := range statuses {
					applied := "-"
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
				}
				return tw.Flush()
			}),
		},
	)
	return cmd
}

// withProvider opens DATABASE_URL, builds the goose provider and runs fn.
func withProvider(fn func(ctx context.Context, cmd *cobra.Command, p *goose.Provider) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return errors.New("DATABASE_URL is not set")
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		p, err := migrations.NewProvider(db)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), cmd, p)
	}
}
