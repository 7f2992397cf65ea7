package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"courtside/internal/domain"
	"courtside/internal/service/matches"
)

type matchView struct {
	ID          string             `json:"id"`
	Format      domain.MatchFormat `json:"format"`
	Surface     domain.Surface     `json:"surface"`
	BestOf      int                `json:"bestOf"`
	Status      domain.MatchStatus `json:"status"`
	WinnerSide  *int               `json:"winnerSide,omitempty"`
	Side1       domain.Side        `json:"side1"`
	Side2       domain.Side        `json:"side2"`
	ScheduledAt *time.Time         `json:"scheduledAt,omitempty"`
	Sets        []domain.MatchSet  `json:"sets"`
	CreatedBy   *string            `json:"createdBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func matchToView(m *domain.Match, sets []domain.MatchSet) matchView {
	if sets == nil {
		sets = []domain.MatchSet{}
	}
	return matchView{
		ID:          m.ID,
		Format:      m.Format,
		Surface:     m.Surface,
		BestOf:      m.BestOf,
		Status:      m.Status,
		WinnerSide:  m.WinnerSide,
		Side1:       m.Side1,
		Side2:       m.Side2,
		ScheduledAt: m.ScheduledAt,
		Sets:        sets,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type listMatchesResponse struct {
	Data          []matchView `json:"data"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	filter := domain.MatchFilter{Page: pageFromQuery(r)}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.MatchStatus(v)
		if !status.Known() {
			writeError(w, domain.ErrValidation("unknown match status %q", v))
			return
		}
		filter.Status = &status
	}

	list, total, err := h.matches.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]matchView, len(list))
	for i := range list {
		data[i] = matchToView(&list[i], nil)
	}
	writeJSON(w, http.StatusOK, listMatchesResponse{
		Data:          data,
		NextPageToken: domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total),
	})
}

type createMatchRequest struct {
	Format      domain.MatchFormat `json:"format"`
	Surface     domain.Surface     `json:"surface"`
	BestOf      int                `json:"bestOf"`
	Side1       domain.Side        `json:"side1"`
	Side2       domain.Side        `json:"side2"`
	ScheduledAt *time.Time         `json:"scheduledAt"`
}

func (h *Handler) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	m, err := h.matches.Create(r.Context(), matches.CreateRequest{
		Format:      req.Format,
		Surface:     req.Surface,
		BestOf:      req.BestOf,
		Side1:       req.Side1,
		Side2:       req.Side2,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, matchToView(m, nil))
}

func (h *Handler) getMatch(w http.ResponseWriter, r *http.Request) {
	m, sets, err := h.matches.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchToView(m, sets))
}

type recordScoreRequest struct {
	Status     domain.MatchStatus `json:"status"`
	WinnerSide *int               `json:"winnerSide"`
	Sets       []domain.MatchSet  `json:"sets"`
}

func (h *Handler) recordScore(w http.ResponseWriter, r *http.Request) {
	var req recordScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	m, sets, err := h.matches.RecordScore(r.Context(), chi.URLParam(r, "id"), matches.ScoreRequest{
		Status:     req.Status,
		WinnerSide: req.WinnerSide,
		Sets:       req.Sets,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchToView(m, sets))
}

func (h *Handler) deleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
