package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// EnvToken is the environment variable consulted when no token is configured.
const EnvToken = "GITHUB_TOKEN"

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// PATProvider provides a static Personal Access Token.
// PATs don't expire, so no refresh logic is needed.
type PATProvider struct {
	token string
}

// NewPATProvider creates a token provider for a fixed token.
func NewPATProvider(token string) *PATProvider {
	return &PATProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the PAT token.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	return p.token, nil
}

// IsAuthenticated returns true if the token is non-empty.
func (p *PATProvider) IsAuthenticated() bool {
	return p.token != ""
}

// NewTokenProvider picks a provider for the configured token.
// An empty token falls back to $GITHUB_TOKEN, then to anonymous access.
func NewTokenProvider(configured string) driven.TokenProvider {
	token := strings.TrimSpace(configured)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(EnvToken))
	}
	if token == "" {
		return NewNullTokenProvider()
	}
	return NewPATProvider(token)
}
