package provider

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/dpytaylo/simple-messenger/internal/auth"
)

// OAuthProvider is the contract every external identity provider
// implements. Implementations return provider facts only; they never touch
// accounts or sessions.
type OAuthProvider interface {
	// Name returns the provider identifier used in routes and in the
	// registration_type bridge cookie.
	Name() string

	// AuthCodeURL builds the provider authorization URL. The CSRF state
	// and the PKCE code verifier are supplied by the caller; the S256
	// challenge is derived from the verifier.
	AuthCodeURL(state, codeVerifier string) string

	// Exchange trades the authorization code plus PKCE verifier for a
	// provider token.
	Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error)

	// Profile fetches the user profile with the access token.
	Profile(ctx context.Context, token *oauth2.Token) (*auth.Profile, error)

	// Revoke invalidates the exchanged token with the provider. The token
	// is single-use bridging material and is not retained either way.
	Revoke(ctx context.Context, token *oauth2.Token) error
}
