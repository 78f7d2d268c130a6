// Package main implements travelctl, the operator CLI for SmartTravel.
// It runs schema migrations and previews deal ranking offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/smarttravel/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "travelctl",
		Short:         "SmartTravel operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(".env")
		},
	}
	root.AddCommand(newMigrateCmd(), newRankCmd())
	return root
}
