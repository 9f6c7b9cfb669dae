package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeIdentityProvider serves the OIDC discovery document plus token,
// userinfo and revocation endpoints.
type fakeIdentityProvider struct {
	srv *httptest.Server

	tokenForm   url.Values
	revokedForm url.Values
	userInfoErr bool
}

func newFakeIdentityProvider(t *testing.T) *fakeIdentityProvider {
	t.Helper()

	f := &fakeIdentityProvider{}
	mux := http.NewServeMux()
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	issuer := f.srv.URL

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"issuer": %q,
			"authorization_endpoint": %q,
			"token_endpoint": %q,
			"userinfo_endpoint": %q,
			"jwks_uri": %q,
			"revocation_endpoint": %q
		}`, issuer, issuer+"/auth", issuer+"/token", issuer+"/userinfo", issuer+"/keys", issuer+"/revoke")
	})

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.tokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fake-access",
			"refresh_token": "fake-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})

	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if f.userInfoErr {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "Bearer fake-access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sub":"12345","email":"user@x.com","email_verified":true}`)
	})

	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.revokedForm = r.PostForm
		w.WriteHeader(http.StatusOK)
	})

	return f
}

func newTestProvider(t *testing.T) (*Provider, *fakeIdentityProvider) {
	t.Helper()
	fake := newFakeIdentityProvider(t)

	p, err := New(context.Background(), fake.srv.URL, "client-id", "client-secret",
		"https://app.example/oauth/google/authorized")
	require.NoError(t, err)
	return p, fake
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), "https://accounts.google.com", "", "secret", "https://x")
	assert.Error(t, err)
}

func TestAuthCodeURLCarriesStateAndChallenge(t *testing.T) {
	p, _ := newTestProvider(t)

	verifier := oauth2.GenerateVerifier()
	raw := p.AuthCodeURL("state-123", verifier)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEqual(t, verifier, q.Get("code_challenge"))
	assert.Equal(t, "client-id", q.Get("client_id"))
}

func TestExchangeSendsVerifier(t *testing.T) {
	p, fake := newTestProvider(t)

	verifier := oauth2.GenerateVerifier()
	token, err := p.Exchange(context.Background(), "auth-code", verifier)
	require.NoError(t, err)

	assert.Equal(t, "fake-access", token.AccessToken)
	assert.Equal(t, "fake-refresh", token.RefreshToken)
	assert.Equal(t, "auth-code", fake.tokenForm.Get("code"))
	assert.Equal(t, verifier, fake.tokenForm.Get("code_verifier"))
}

func TestProfileFetchesEmail(t *testing.T) {
	p, _ := newTestProvider(t)

	profile, err := p.Profile(context.Background(), &oauth2.Token{
		AccessToken: "fake-access",
		TokenType:   "Bearer",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@x.com", profile.Email)
}

func TestProfileUpstreamFailure(t *testing.T) {
	p, fake := newTestProvider(t)
	fake.userInfoErr = true

	_, err := p.Profile(context.Background(), &oauth2.Token{
		AccessToken: "fake-access",
		TokenType:   "Bearer",
	})
	assert.Error(t, err)
}

func TestRevokePrefersRefreshToken(t *testing.T) {
	p, fake := newTestProvider(t)

	err := p.Revoke(context.Background(), &oauth2.Token{
		AccessToken:  "fake-access",
		RefreshToken: "fake-refresh",
	})
	require.NoError(t, err)
	assert.Equal(t, "fake-refresh", fake.revokedForm.Get("token"))
}

func TestRevokeFallsBackToAccessToken(t *testing.T) {
	p, fake := newTestProvider(t)

	err := p.Revoke(context.Background(), &oauth2.Token{AccessToken: "fake-access"})
	require.NoError(t, err)
	assert.Equal(t, "fake-access", fake.revokedForm.Get("token"))
}
