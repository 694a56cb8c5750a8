package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/store"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
	"github.com/devHenao/ventasPro/pkg/httputil"
	"github.com/devHenao/ventasPro/pkg/middleware"
)

// SessionHandler exposes the administrator session.
type SessionHandler struct {
	sf     *store.Storefront
	logger *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(sf *store.Storefront, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sf: sf, logger: logger}
}

// SignInRequest carries a token when no Authorization header is sent.
type SignInRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

func newSessionResponse(s domain.Session, ok bool) sessionResponse {
	if !ok {
		return sessionResponse{}
	}
	resp := sessionResponse{Authenticated: true, User: &s.User}
	if !s.ExpiresAt.IsZero() {
		resp.ExpiresAt = &s.ExpiresAt
	}
	return resp
}

// SignIn handles POST /api/v1/session
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())
	if token == "" {
		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("token is required"), h.logger)
			return
		}
		token = req.Token
	}

	var (
		s   domain.Session
		err error
	)
	h.sf.With(func() { s, err = h.sf.Session.SignIn(token) })
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, newSessionResponse(s, true))
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp sessionResponse
	h.sf.With(func() { resp = newSessionResponse(h.sf.Session.Current()) })
	httputil.WriteData(w, http.StatusOK, resp)
}

// SignOut handles DELETE /api/v1/session
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sf.With(h.sf.Session.SignOut)
	w.WriteHeader(http.StatusNoContent)
}
