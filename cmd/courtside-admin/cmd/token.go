package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"courtside/internal/db"
	"courtside/internal/db/repository"
	"courtside/internal/token"
)

var issueTokenEmail string

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a session token for an account",
	Long: `issue-token signs a session token for an existing account using the
configured JWT secret. The token embeds the role persisted right now;
later role changes do not affect it until it expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if issueTokenEmail == "" {
			return fmt.Errorf("--email is required")
		}

		pool, err := db.OpenSQLite(cfg.DBPath, "read", 0)
		if err != nil {
			return err
		}
		defer pool.Close()

		u, err := repository.NewUserRepo(pool).GetByEmail(context.Background(), issueTokenEmail)
		if err != nil {
			return err
		}

		tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return err
		}
		signed, err := tokens.Issue(u)
		if err != nil {
			return err
		}

		fmt.Println(signed)
		return nil
	},
}

func init() {
	issueTokenCmd.Flags().StringVar(&issueTokenEmail, "email", "", "account email (required)")
}
