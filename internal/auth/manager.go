// Package auth holds the administrator session. The storefront never verifies
// the bearer token: it decodes the claims for display and expiry, and leaves
// verification to the catalog upstream.
package auth

import (
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devHenao/ventasPro/internal/domain"
	"github.com/devHenao/ventasPro/internal/reactive"
	apperrors "github.com/devHenao/ventasPro/pkg/errors"
)

// Claims are the bearer token claims the storefront reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager owns the session cell.
type Manager struct {
	state  *reactive.Cell[domain.Session]
	parser *jwt.Parser
	now    func() time.Time
	logger *slog.Logger
}

// NewManager creates a manager from a hydrated session. An expired session is
// discarded.
func NewManager(initial domain.Session, logger *slog.Logger) *Manager {
	m := &Manager{
		parser: jwt.NewParser(),
		now:    time.Now,
		logger: logger,
	}
	if initial.Expired(m.now()) {
		logger.Info("discarding expired session", slog.String("user_id", initial.User.ID))
		initial = domain.Session{}
	}
	m.state = reactive.NewCell(initial)
	return m
}

// State exposes the session cell.
func (m *Manager) State() *reactive.Cell[domain.Session] {
	return m.state
}

// SignIn decodes token and makes it the current session.
func (m *Manager) SignIn(token string) (domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Session{}, apperrors.InvalidInput("token is required")
	}

	var claims Claims
	if _, _, err := m.parser.ParseUnverified(token, &claims); err != nil {
		return domain.Session{}, apperrors.InvalidInput("malformed token")
	}
	if claims.Subject == "" {
		return domain.Session{}, apperrors.InvalidInput("token has no subject")
	}

	s := domain.Session{
		Token: token,
		User: domain.User{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		},
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.UTC()
	}
	if s.Expired(m.now()) {
		return domain.Session{}, apperrors.Unauthorized("token has expired")
	}

	m.state.Set(s)
	m.logger.Info("signed in", slog.String("user_id", s.User.ID), slog.String("role", s.User.Role))
	return s, nil
}

// SignOut clears the session.
func (m *Manager) SignOut() {
	if m.state.Get().IsZero() {
		return
	}
	m.state.Set(domain.Session{})
	m.logger.Info("signed out")
}

// Current returns the session while it is valid.
func (m *Manager) Current() (domain.Session, bool) {
	s := m.state.Get()
	if s.IsZero() || s.Expired(m.now()) {
		return domain.Session{}, false
	}
	return s, true
}

// Token returns the bearer credential, or an empty string when signed out or
// expired.
func (m *Manager) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}
	return s.Token
}
