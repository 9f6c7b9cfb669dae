package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/auth"
	"github.com/dpytaylo/simple-messenger/internal/auth/credentials"
	"github.com/dpytaylo/simple-messenger/internal/auth/provider"
	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

type testEnv struct {
	router   *gin.Engine
	accounts *accounts.MemoryStore
	store    *kv.Memory
}

func newTestEnv(t *testing.T, providers ...provider.OAuthProvider) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accountStore := accounts.NewMemoryStore()
	kvStore := kv.NewMemory()

	tokens, err := session.NewTokenSource()
	require.NoError(t, err)

	h := NewHandler(
		provider.NewRegistry(providers...),
		credentials.NewService(accountStore, 72, 64),
		accountStore,
		session.NewIssuer(tokens, kvStore, 3*time.Hour),
		kvStore,
		10*time.Minute,
	)

	router := gin.New()
	h.RegisterRoutes(router)

	return &testEnv{
		router:   router,
		accounts: accountStore,
		store:    kvStore,
	}
}

func (e *testEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// sessionAccount returns the account id a session cookie resolves to.
func (e *testEnv) sessionAccount(t *testing.T, cookie *http.Cookie) string {
	t.Helper()
	require.NotNil(t, cookie, "expected a session cookie")

	id, err := e.store.Get(context.Background(), kv.NamespaceSessions, cookie.Value)
	require.NoError(t, err)
	return id
}

// fakeProvider implements provider.OAuthProvider without network traffic.
type fakeProvider struct {
	name        string
	email       string
	exchangeErr error
	profileErr  error
	revokeErr   error

	gotCode     string
	gotVerifier string
	revoked     []*oauth2.Token
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) AuthCodeURL(state, codeVerifier string) string {
	return "https://provider.example/authorize?state=" + state
}

func (f *fakeProvider) Exchange(_ context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	f.gotCode = code
	f.gotVerifier = codeVerifier
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeProvider) Profile(_ context.Context, _ *oauth2.Token) (*auth.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &auth.Profile{Email: f.email}, nil
}

func (f *fakeProvider) Revoke(_ context.Context, token *oauth2.Token) error {
	f.revoked = append(f.revoked, token)
	return f.revokeErr
}
