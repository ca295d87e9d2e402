package authenticator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimsEmail(t *testing.T) {
	assert.Equal(t, "a@example.com", Claims{"email": "a@example.com", "sub": "123"}.Email())
	assert.Equal(t, "alice", Claims{"email": "", "preferred_username": "alice"}.Email())
	assert.Equal(t, "123", Claims{"sub": "123"}.Email())
	assert.Empty(t, Claims{}.Email())
}

func TestOpenIDConfig(t *testing.T) {
	cfg := OpenIDConfig{Domain: "login.example.com", ClientID: "id", ClientSecret: "secret", CallbackURL: "http://localhost/callback"}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "https://login.example.com/", cfg.IssuerURL())

	cfg.Domain = "http://localhost:5556/dex"
	assert.Equal(t, "http://localhost:5556/dex", cfg.IssuerURL())

	cfg.ClientSecret = ""
	assert.EqualError(t, cfg.Validate(), "client secret is required")
}

func TestNewOpenIDProviderRejectsIncompleteConfig(t *testing.T) {
	_, err := NewOpenIDProvider(context.Background(), OpenIDConfig{Domain: "login.example.com"})
	assert.EqualError(t, err, "client ID is required")
}
