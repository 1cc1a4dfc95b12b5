package auth

import (
	"context"
	"errors"

	"github.com/dynfw/firewall-sync/internal/domain"
	"golang.org/x/oauth2/clientcredentials"
)

// Issuer exchanges service-principal credentials for bearer tokens scoped to
// the management API.
type Issuer interface {
	Token(ctx context.Context) (string, error)
}

// ClientCredentialsIssuer performs the OAuth2 client-credentials flow.
type ClientCredentialsIssuer struct {
	cfg clientcredentials.Config
}

// Ensure ClientCredentialsIssuer implements Issuer.
var _ Issuer = (*ClientCredentialsIssuer)(nil)

// NewClientCredentials creates an issuer for the given token endpoint and
// service-principal credentials.
func NewClientCredentials(tokenURL, clientID, clientSecret, scope string) *ClientCredentialsIssuer {
	return &ClientCredentialsIssuer{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       []string{scope},
		},
	}
}

// Token requests a fresh bearer token. Tokens are not cached: each
// management-API call presents a token minted for it, so expiry never has to
// be tracked across calls.
func (i *ClientCredentialsIssuer) Token(ctx context.Context) (string, error) {
	tok, err := i.cfg.Token(ctx)
	if err != nil {
		return "", &domain.AuthError{Err: err}
	}
	if tok.AccessToken == "" {
		return "", &domain.AuthError{Err: errors.New("empty access token in response")}
	}
	return tok.AccessToken, nil
}
