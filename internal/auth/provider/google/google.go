package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/dpytaylo/simple-messenger/internal/auth"
)

const providerName = "google"

// Per-call budget for every provider round trip (exchange, profile fetch,
// revocation). A timeout surfaces as a provider-request failure, never as a
// process fault.
const requestTimeout = 10 * time.Second

type Provider struct {
	oauthConfig   *oauth2.Config
	userInfo      func(ctx context.Context, token *oauth2.Token) (email string, err error)
	revocationURL string
	httpClient    *http.Client
}

// New discovers the Google endpoints via OIDC. The issuer is configurable
// so tests can point it at a fake provider.
func New(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*Provider, error) {
	if issuer == "" || clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	httpClient := &http.Client{Timeout: requestTimeout}

	oidcProvider, err := oidc.NewProvider(oidc.ClientContext(ctx, httpClient), issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	// The revocation endpoint is part of the discovery document but not of
	// go-oidc's typed surface.
	var discovery struct {
		RevocationEndpoint string `json:"revocation_endpoint"`
	}
	if err := oidcProvider.Claims(&discovery); err != nil {
		return nil, fmt.Errorf("google discovery document: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"email",
		},
	}

	userInfo := func(ctx context.Context, token *oauth2.Token) (string, error) {
		info, err := oidcProvider.UserInfo(
			oidc.ClientContext(ctx, httpClient),
			oauth2.StaticTokenSource(token),
		)
		if err != nil {
			return "", err
		}
		return info.Email, nil
	}

	return &Provider{
		oauthConfig:   oauthCfg,
		userInfo:      userInfo,
		revocationURL: discovery.RevocationEndpoint,
		httpClient:    httpClient,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the authorization URL with the S256 PKCE challenge.
func (p *Provider) AuthCodeURL(state, codeVerifier string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.S256ChallengeOption(codeVerifier),
	)
}

func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}
	return token, nil
}

func (p *Provider) Profile(ctx context.Context, token *oauth2.Token) (*auth.Profile, error) {
	email, err := p.userInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	if email == "" {
		return nil, errors.New("google userinfo missing email")
	}
	return &auth.Profile{Email: email}, nil
}

// Revoke invalidates the refresh token if present, otherwise the access
// token.
func (p *Provider) Revoke(ctx context.Context, token *oauth2.Token) error {
	if p.revocationURL == "" {
		return errors.New("google discovery document has no revocation endpoint")
	}

	credential := token.RefreshToken
	if credential == "" {
		credential = token.AccessToken
	}

	form := url.Values{"token": {credential}}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.revocationURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("google revocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("google revocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google revocation returned %s", resp.Status)
	}
	return nil
}
