package auth

import (
	"net/url"
	"strings"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const avatarBaseURL = "https://api.dicebear.com/9.x/initials/svg?seed="

// Gate is the local sign-in switch in front of the dashboard. It accepts any
// non-empty credentials and stores nothing.
type Gate struct {
	mu      sync.RWMutex
	session domain.UserSession
}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) Login(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.ErrEmptyCredentials
	}
	g.signIn(username)
	return nil
}

func (g *Gate) Register(username, password, confirm string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.ErrEmptyCredentials
	}
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	g.signIn(username)
	return nil
}

func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = domain.UserSession{}
}

func (g *Gate) Session() domain.UserSession {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

func (g *Gate) signIn(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = domain.UserSession{Authenticated: true, Username: username}
}

// AvatarURL returns the initials avatar for s, or the guest avatar.
func AvatarURL(s domain.UserSession) string {
	seed := "Guest"
	if s.Authenticated && s.Username != "" {
		seed = s.Username
	}
	return avatarBaseURL + url.QueryEscape(seed)
}
