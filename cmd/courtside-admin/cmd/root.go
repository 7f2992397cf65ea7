// Package cmd implements the courtside-admin operator CLI. It writes to the
// datastore directly, below the HTTP gate; every mutation is still audited,
// attributed to the "system" actor.
package cmd

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"courtside/internal/config"
	"courtside/internal/db"
)

// systemActor attributes CLI-originated audit entries.
const systemActor = "system"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "courtside-admin",
	Short: "Operator tooling for the courtside service",
	Long: `courtside-admin manages accounts and sessions directly against the
SQLite datastore. It is meant for bootstrap and break-glass operations;
day-to-day administration goes through the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFromEnv()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(issueTokenCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openWriteDB opens the write pool and runs migrations so CLI commands work
// against a fresh database file.
func openWriteDB() (*sql.DB, error) {
	pool, err := db.OpenSQLite(cfg.DBPath, "write", 0)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(pool); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return pool, nil
}
