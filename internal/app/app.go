// Package app wires repositories, services, and the authorization gate from
// the external dependencies that main() provides.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"courtside/internal/audit"
	"courtside/internal/config"
	"courtside/internal/credential"
	"courtside/internal/db/repository"
	"courtside/internal/rbac"
	"courtside/internal/scoring"
	"courtside/internal/service/governance"
	"courtside/internal/service/matches"
	"courtside/internal/service/roster"
	"courtside/internal/service/security"
	"courtside/internal/token"
)

// PublicPaths is the authentication allow-list: requests whose path falls
// under one of these prefixes skip token resolution.
var PublicPaths = []string{"/auth/signin", "/healthz"}

// Deps holds the external dependencies that main() must provide: config,
// database pools, and the root logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler needs.
type Services struct {
	Principal *security.PrincipalService
	Session   *security.SessionService
	Player    *roster.PlayerService
	Match     *matches.MatchService
	Audit     *governance.AuditService
}

// App holds the fully-wired application.
type App struct {
	Services Services
	Gate     *rbac.Gate
	Tokens   *token.Manager
}

// New wires all repositories and services from the provided deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories. Mutations go through the write pool; reads that never
	// sit in a write transaction use the read pool.
	userRepo := repository.NewUserRepo(deps.WriteDB)
	playerRepo := repository.NewPlayerRepo(deps.WriteDB)
	matchRepo := repository.NewMatchRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.ReadDB)

	// Authorization gate, optionally overridden from a capability map file.
	gate := rbac.NewGate(PublicPaths)
	if cfg.CapabilityMapPath != "" {
		if err := rbac.LoadCapabilityFile(gate, cfg.CapabilityMapPath); err != nil {
			return nil, fmt.Errorf("capability map: %w", err)
		}
		deps.Logger.Info("capability map loaded", "path", cfg.CapabilityMapPath)
	}

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	recorder := audit.NewRecorder()
	creds := &credential.Bcrypt{}
	rules := scoring.Rules{
		GamesToWin:        cfg.Scoring.GamesToWin,
		WinBy:             cfg.Scoring.WinBy,
		TiebreakMinPoints: cfg.Scoring.TiebreakMinPoints,
		TiebreakWinBy:     cfg.Scoring.TiebreakWinBy,
	}

	return &App{
		Services: Services{
			Principal: security.NewPrincipalService(userRepo, gate, recorder, creds),
			Session:   security.NewSessionService(userRepo, creds, tokens, deps.Logger.With("component", "session")),
			Player:    roster.NewPlayerService(playerRepo, userRepo, gate, recorder),
			Match:     matches.NewMatchService(matchRepo, gate, recorder, rules),
			Audit:     governance.NewAuditService(auditRepo, gate),
		},
		Gate:   gate,
		Tokens: tokens,
	}, nil
}
