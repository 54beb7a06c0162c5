package auth

import (
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"accepts any credentials", "alice", "secret", nil},
		{"missing username", "", "secret", domain.ErrEmptyCredentials},
		{"blank username", "   ", "secret", domain.ErrEmptyCredentials},
		{"missing password", "alice", "", domain.ErrEmptyCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()

			err := g.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, g.Session().Authenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.UserSession{Authenticated: true, Username: tt.username}, g.Session())
		})
	}
}

func TestGate_Register(t *testing.T) {
	g := NewGate()

	assert.ErrorIs(t, g.Register("bob", "pw", "other"), domain.ErrPasswordMismatch)
	assert.ErrorIs(t, g.Register("", "pw", "pw"), domain.ErrEmptyCredentials)
	assert.False(t, g.Session().Authenticated)

	require.NoError(t, g.Register("bob", "pw", "pw"))
	assert.Equal(t, "bob", g.Session().Username)
}

func TestGate_Logout(t *testing.T) {
	g := NewGate()
	require.NoError(t, g.Login("alice", "secret"))

	g.Logout()

	assert.Equal(t, domain.UserSession{}, g.Session())
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, avatarBaseURL+"Guest", AvatarURL(domain.UserSession{}))
	assert.Equal(t, avatarBaseURL+"Jane+Doe", AvatarURL(domain.UserSession{Authenticated: true, Username: "Jane Doe"}))
}
