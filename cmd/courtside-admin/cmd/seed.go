package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"courtside/internal/audit"
	"courtside/internal/credential"
	"courtside/internal/db/repository"
	"courtside/internal/domain"
	"courtside/internal/rbac"
	"courtside/internal/service/security"
)

// systemContext carries a synthetic admin principal so CLI commands pass the
// same gate checks as API traffic.
func systemContext() context.Context {
	return domain.WithPrincipal(context.Background(), domain.ContextPrincipal{
		ID:   systemActor,
		Name: "System",
		Role: domain.RoleAdmin,
	})
}

func newPrincipalService(pool *sql.DB) *security.PrincipalService {
	return security.NewPrincipalService(
		repository.NewUserRepo(pool),
		rbac.NewGate(nil),
		audit.NewRecorder(),
		&credential.Bcrypt{},
	)
}

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default demo accounts",
	Long: `seed creates one account per role (admin, manager, viewer) when the
account does not already exist. Accounts seeded without --password cannot
sign in until a credential is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openWriteDB()
		if err != nil {
			return err
		}
		defer pool.Close()

		users := repository.NewUserRepo(pool)
		svc := newPrincipalService(pool)
		ctx := systemContext()

		seeds := []security.CreateUserRequest{
			{Name: "Admin User", Email: "admin@test.com", Role: domain.RoleAdmin, Password: seedPassword},
			{Name: "Manager User", Email: "manager@test.com", Role: domain.RoleManager, Password: seedPassword},
			{Name: "Viewer User", Email: "viewer@test.com", Role: domain.RoleViewer, Password: seedPassword},
		}

		for _, req := range seeds {
			if _, err := users.GetByEmail(ctx, req.Email); err == nil {
				fmt.Printf("%s already exists\n", req.Email)
				continue
			} else if !errors.As(err, new(*domain.NotFoundError)) {
				return fmt.Errorf("check %s: %w", req.Email, err)
			}

			u, err := svc.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("create %s: %w", req.Email, err)
			}
			fmt.Printf("created %s (%s) id=%s\n", u.Email, u.Role, u.ID)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "initial password for all seeded accounts")
}
