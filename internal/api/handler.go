package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"courtside/internal/domain"
	"courtside/internal/service/matches"
	"courtside/internal/service/roster"
	"courtside/internal/service/security"
)

// Service interfaces consumed by the handler. Concrete services satisfy
// them; tests substitute function-field mocks.

type principalService interface {
	Create(ctx context.Context, req security.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)
	Update(ctx context.Context, id string, req security.UpdateRequest) (*domain.User, error)
	SetPassword(ctx context.Context, id, password string) error
	Delete(ctx context.Context, id string) error
}

type sessionService interface {
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
}

type playerService interface {
	Create(ctx context.Context, req roster.CreateRequest) (*domain.Player, error)
	Get(ctx context.Context, id string) (*domain.Player, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Player, int64, error)
	Update(ctx context.Context, id string, req roster.UpdateRequest) (*domain.Player, error)
	Delete(ctx context.Context, id string) error
}

type matchService interface {
	Create(ctx context.Context, req matches.CreateRequest) (*domain.Match, error)
	Get(ctx context.Context, id string) (*domain.Match, []domain.MatchSet, error)
	List(ctx context.Context, filter domain.MatchFilter) ([]domain.Match, int64, error)
	RecordScore(ctx context.Context, id string, req matches.ScoreRequest) (*domain.Match, []domain.MatchSet, error)
	Delete(ctx context.Context, id string) error
}

type auditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error)
}

// Handler serves the HTTP API.
type Handler struct {
	principals principalService
	sessions   sessionService
	players    playerService
	matches    matchService
	audit      auditService
	logger     *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(principals principalService, sessions sessionService, players playerService, matchSvc matchService, audit auditService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		principals: principals,
		sessions:   sessions,
		players:    players,
		matches:    matchSvc,
		audit:      audit,
		logger:     logger,
	}
}

// PublicRoutes mounts the endpoints on the authentication allow-list.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/auth/signin", h.signIn)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Routes mounts the authenticated API.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Patch("/{id}", h.updateUser)
		r.Put("/{id}/password", h.setUserPassword)
		r.Delete("/{id}", h.deleteUser)
	})
	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.listPlayers)
		r.Post("/", h.createPlayer)
		r.Get("/{id}", h.getPlayer)
		r.Patch("/{id}", h.updatePlayer)
		r.Delete("/{id}", h.deletePlayer)
	})
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", h.listMatches)
		r.Post("/", h.createMatch)
		r.Get("/{id}", h.getMatch)
		r.Put("/{id}/score", h.recordScore)
		r.Delete("/{id}", h.deleteMatch)
	})
	r.Get("/audit", h.listAudit)
}

// pageFromQuery extracts pagination parameters from the query string.
// Invalid max_results values fall back to the default page size.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if v := r.URL.Query().Get("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.MaxResults = n
		}
	}
	return p
}
