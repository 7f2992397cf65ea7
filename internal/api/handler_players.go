package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"courtside/internal/domain"
	"courtside/internal/service/roster"
)

type playerView struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Ranking   int                 `json:"ranking"`
	Stats     *domain.PlayerStats `json:"stats,omitempty"`
	CreatedBy *string             `json:"createdBy,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func playerToView(p *domain.Player) playerView {
	return playerView{
		ID:        p.ID,
		UserID:    p.UserID,
		Ranking:   p.Ranking,
		Stats:     p.Stats,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type listPlayersResponse struct {
	Data          []playerView `json:"data"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	players, total, err := h.players.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]playerView, len(players))
	for i := range players {
		data[i] = playerToView(&players[i])
	}
	writeJSON(w, http.StatusOK, listPlayersResponse{
		Data:          data,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

type createPlayerRequest struct {
	UserID  string `json:"userId"`
	Ranking int    `json:"ranking"`
}

func (h *Handler) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.players.Create(r.Context(), roster.CreateRequest{UserID: req.UserID, Ranking: req.Ranking})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playerToView(p))
}

func (h *Handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playerToView(p))
}

type updatePlayerRequest struct {
	Ranking *int                `json:"ranking"`
	Stats   *domain.PlayerStats `json:"stats"`
}

func (h *Handler) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var req updatePlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.players.Update(r.Context(), chi.URLParam(r, "id"), roster.UpdateRequest{
		Ranking: req.Ranking,
		Stats:   req.Stats,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playerToView(p))
}

func (h *Handler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
