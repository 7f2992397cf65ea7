package api

import (
	"net/http"

	"courtside/internal/domain"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// signIn authenticates credentials and issues a session token. This route is
// on the public allow-list: it must be reachable without authentication.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, domain.ErrValidation("email and password are required"))
		return
	}

	tok, u, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, signInResponse{Token: tok, User: userToView(u)})
}
