// Package session tracks which principal, if any, the current process
// considers authenticated.
//
// Gate is a two-state machine:
//
//	Anonymous ──Login──▶ Authenticated(snapshot)
//	    ▲                      │
//	    └───────Logout─────────┘
//
// Login while already authenticated replaces the session (re-login is
// allowed and logged). Logout while anonymous is a no-op that is logged at
// warn level for audit. RequireAuthenticated is the single authorization
// checkpoint used before any secret access.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/models"
	"github.com/google/uuid"
)

// Session is the in-memory record of one login. It is never persisted.
type Session struct {
	ID        string
	Principal models.PrincipalSnapshot
	StartedAt time.Time
}

// Gate holds zero or one live Session.
type Gate struct {
	logger logging.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *Session
}

func NewGate(logger logging.Logger) *Gate {
	return &Gate{logger: logger, now: time.Now}
}

// Login moves the gate to Authenticated(p) and returns the new session.
func (g *Gate) Login(ctx context.Context, p models.PrincipalSnapshot) Session {
	s := &Session{ID: uuid.NewString(), Principal: p, StartedAt: g.now()}

	g.mu.Lock()
	prev := g.current
	g.current = s
	g.mu.Unlock()

	if prev != nil {
		g.logger.Info(ctx, "session replaced by new login",
			"previous_session_id", prev.ID, "previous_user", prev.Principal.Username,
			"session_id", s.ID, "user", p.Username)
	} else {
		g.logger.Info(ctx, "session started", "session_id", s.ID, "user", p.Username)
	}
	return *s
}

// Logout returns the gate to Anonymous. Calling it while anonymous does
// nothing besides a warning.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	prev := g.current
	g.current = nil
	g.mu.Unlock()

	if prev == nil {
		g.logger.Warn(ctx, "logout requested without an active session")
		return
	}
	g.logger.Info(ctx, "session ended", "session_id", prev.ID, "user", prev.Principal.Username,
		"duration", g.now().Sub(prev.StartedAt).String())
}

// RequireAuthenticated returns the current session or common.ErrUnauthorized.
func (g *Gate) RequireAuthenticated(ctx context.Context) (Session, error) {
	g.mu.RLock()
	s := g.current
	g.mu.RUnlock()

	if s == nil {
		g.logger.Warn(ctx, "unauthorized access attempt to a protected operation")
		return Session{}, common.ErrUnauthorized
	}
	return *s, nil
}

// Current reports the live session without logging, for status displays.
func (g *Gate) Current() (Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return Session{}, false
	}
	return *g.current, true
}
