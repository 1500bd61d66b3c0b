package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/internal/core/port"
)

// adminFlagKey is the client-local persistence key for the remembered
// session, kept from the original storefront.
const adminFlagKey = "isAdminLoggedIn"

// A SessionGate controls admin-panel access with a single fixed secret
// compared locally. It is explicitly NOT a security boundary: the secret
// is compiled into the client and the persisted flag is forgeable.
type SessionGate struct {
	secret string
	flags  port.FlagStore

	mu      sync.Mutex
	session domain.Session
}

func NewSessionGate(secret string, flags port.FlagStore) *SessionGate {
	return &SessionGate{secret: secret, flags: flags}
}

// Login succeeds iff password equals the fixed secret. On success the
// session becomes admin and, with rememberMe set, a flag is persisted.
// On failure the session is unchanged. There is no lockout or rate limit.
func (g *SessionGate) Login(password string, rememberMe bool) error {
	const op = "SessionGate.Login"
	log := slog.With("op", op)

	if password != g.secret {
		return fmt.Errorf("%s: %w", op, domain.ErrAuth)
	}

	g.mu.Lock()
	g.session = domain.Session{IsAdmin: true, RememberMe: rememberMe}
	g.mu.Unlock()

	if rememberMe {
		if err := g.flags.Set(adminFlagKey, "true"); err != nil {
			log.Error("failed to persist session flag", "err", err)
		}
	}

	log.Info("admin logged in", "remembered", rememberMe)
	return nil
}

// Logout clears the session and erases the persisted flag.
func (g *SessionGate) Logout() {
	const op = "SessionGate.Logout"
	log := slog.With("op", op)

	g.mu.Lock()
	g.session = domain.Session{}
	g.mu.Unlock()

	if err := g.flags.Delete(adminFlagKey); err != nil {
		log.Error("failed to erase session flag", "err", err)
	}

	log.Info("admin logged out")
}

// Restore runs once at startup: a persisted flag grants the admin session
// back without re-checking the password.
func (g *SessionGate) Restore() {
	const op = "SessionGate.Restore"
	log := slog.With("op", op)

	v, ok, err := g.flags.Get(adminFlagKey)
	if err != nil {
		log.Error("failed to read session flag", "err", err)
		return
	}
	if !ok || v != "true" {
		return
	}

	g.mu.Lock()
	g.session = domain.Session{IsAdmin: true, RememberMe: true}
	g.mu.Unlock()

	log.Info("admin session restored")
}

// IsAdmin reports whether the current session has admin access.
func (g *SessionGate) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.IsAdmin
}

// Session returns the current session value object.
func (g *SessionGate) Session() domain.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}
