package cmd

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"courtside/internal/db/repository"
	"courtside/internal/domain"
	"courtside/internal/service/security"
)

var (
	userName     string
	userEmail    string
	userRole     string
	userPassword string
	userStdin    bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

func addCredentialFlags(fs *pflag.FlagSet) {
	fs.StringVar(&userPassword, "password", "", "password value (prefer --prompt)")
	fs.BoolVar(&userStdin, "prompt", false, "read the password from the terminal without echo")
}

// resolvePassword returns the credential from --password or an interactive
// no-echo prompt.
func resolvePassword() (string, error) {
	if userStdin {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	return userPassword, nil
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userEmail == "" {
			return fmt.Errorf("--email is required")
		}
		if _, err := mail.ParseAddress(userEmail); err != nil {
			return fmt.Errorf("invalid email: %w", err)
		}
		role := domain.Role(userRole)
		if !role.Known() {
			return fmt.Errorf("unknown role %q (valid: %v)", userRole, domain.Roles)
		}

		password, err := resolvePassword()
		if err != nil {
			return err
		}

		pool, err := openWriteDB()
		if err != nil {
			return err
		}
		defer pool.Close()

		if _, err := repository.NewUserRepo(pool).GetByEmail(cmd.Context(), userEmail); err == nil {
			return fmt.Errorf("account %q already exists", userEmail)
		} else if !errors.As(err, new(*domain.NotFoundError)) {
			return err
		}

		u, err := newPrincipalService(pool).Create(systemContext(), security.CreateUserRequest{
			Name:     userName,
			Email:    userEmail,
			Role:     role,
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("created %s (%s) id=%s\n", u.Email, u.Role, u.ID)
		return nil
	},
}

var userSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Replace an account's credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userEmail == "" {
			return fmt.Errorf("--email is required")
		}

		password, err := resolvePassword()
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required (use --password or --prompt)")
		}

		pool, err := openWriteDB()
		if err != nil {
			return err
		}
		defer pool.Close()

		u, err := repository.NewUserRepo(pool).GetByEmail(cmd.Context(), userEmail)
		if err != nil {
			return err
		}
		if err := newPrincipalService(pool).SetPassword(systemContext(), u.ID, password); err != nil {
			return err
		}

		fmt.Printf("password updated for %s\n", u.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account email (required)")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(domain.RoleViewer), "account role")
	addCredentialFlags(userCreateCmd.Flags())

	userSetPasswordCmd.Flags().StringVar(&userEmail, "email", "", "account email (required)")
	addCredentialFlags(userSetPasswordCmd.Flags())

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userSetPasswordCmd)
}
