package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/auth"
	"github.com/rs/zerolog"
)

// Gate is the sign-in switch. *auth.Gate satisfies it.
type Gate interface {
	Login(username, password string) error
	Register(username, password, confirm string) error
	Logout()
	Session() domain.UserSession
}

type Handler struct {
	gate Gate
}

func NewHandler(gate Gate) *Handler {
	return &Handler{gate: gate}
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeSession(w, r, http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.complete(w, r, h.gate.Login(req.Username, req.Password))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.complete(w, r, h.gate.Register(req.Username, req.Password, req.ConfirmPassword))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout()
	h.writeSession(w, r, http.StatusOK)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		h.writeSession(w, r, http.StatusOK)
	case errors.Is(err, domain.ErrEmptyCredentials), errors.Is(err, domain.ErrPasswordMismatch):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("sign in failed")
		http.Error(w, "sign in failed", http.StatusInternalServerError)
	}
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, status int) {
	s := h.gate.Session()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(api.Session{
		Authenticated: s.Authenticated,
		Username:      s.Username,
		AvatarURL:     auth.AvatarURL(s),
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode session")
	}
}
