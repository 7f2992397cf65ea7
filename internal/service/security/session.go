package security

import (
	"context"
	"errors"
	"log/slog"

	"courtside/internal/credential"
	"courtside/internal/domain"
	"courtside/internal/token"
)

// SessionService authenticates credentials and issues session tokens.
// The role embedded at issuance is read from storage at that moment and
// stays authoritative for the token's lifetime.
type SessionService struct {
	users    domain.UserRepository
	verifier credential.Verifier
	tokens   *token.Manager
	logger   *slog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(users domain.UserRepository, verifier credential.Verifier, tokens *token.Manager, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{users: users, verifier: verifier, tokens: tokens, logger: logger}
}

// SignIn verifies the credentials and returns a signed session token plus
// the account. Unknown accounts and bad passwords both come back as
// UnauthenticatedError so the response does not reveal which failed.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Info("sign-in rejected", "email", email, "reason", "unknown account")
			return "", nil, domain.ErrUnauthenticated("invalid credentials")
		}
		return "", nil, err
	}

	if u.PasswordHash == "" {
		s.logger.Info("sign-in rejected", "user", u.ID, "reason", "no credential set")
		return "", nil, domain.ErrUnauthenticated("invalid credentials")
	}
	if err := s.verifier.Verify(u.PasswordHash, password); err != nil {
		if errors.Is(err, credential.ErrMismatch) {
			s.logger.Info("sign-in rejected", "user", u.ID, "reason", "credential mismatch")
			return "", nil, domain.ErrUnauthenticated("invalid credentials")
		}
		return "", nil, err
	}

	signed, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("sign-in", "user", u.ID, "role", u.Role)
	return signed, u, nil
}
