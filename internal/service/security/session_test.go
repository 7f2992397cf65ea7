package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"courtside/internal/credential"
	"courtside/internal/domain"
	"courtside/internal/testutil"
	"courtside/internal/token"
)

func newSessionService(t *testing.T, repo *testutil.MockUserRepo) (*SessionService, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager("session-test-secret", time.Hour)
	require.NoError(t, err)
	return NewSessionService(repo, &credential.Bcrypt{}, tokens, nil), tokens
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := (&credential.Bcrypt{Cost: bcrypt.MinCost}).Hash(password)
	require.NoError(t, err)
	return h
}

func TestSessionService_SignIn(t *testing.T) {
	stored := &domain.User{
		ID:           "u-1",
		Name:         "Manager User",
		Email:        "manager@test.com",
		Role:         domain.RoleManager,
		PasswordHash: hashOf(t, "correct-horse"),
	}
	repo := &testutil.MockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email != stored.Email {
				return nil, domain.ErrNotFound("user %s not found", email)
			}
			return stored, nil
		},
	}
	svc, tokens := newSessionService(t, repo)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		signed, u, err := svc.SignIn(ctx, "manager@test.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)

		p, err := tokens.Resolve(ctx, signed)
		require.NoError(t, err)
		assert.Equal(t, "u-1", p.ID)
		assert.Equal(t, domain.RoleManager, p.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.SignIn(ctx, "manager@test.com", "wrong")
		var unauthn *domain.UnauthenticatedError
		require.ErrorAs(t, err, &unauthn)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := svc.SignIn(ctx, "nobody@test.com", "whatever")
		var unauthn *domain.UnauthenticatedError
		require.ErrorAs(t, err, &unauthn)
		// Indistinguishable from a bad password.
		assert.Contains(t, err.Error(), "invalid credentials")
	})
}

func TestSessionService_SignIn_NoCredentialSet(t *testing.T) {
	repo := &testutil.MockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u-2", Email: email, Role: domain.RoleViewer}, nil
		},
	}
	svc, _ := newSessionService(t, repo)

	_, _, err := svc.SignIn(context.Background(), "seeded@test.com", "anything")
	var unauthn *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauthn)
}
