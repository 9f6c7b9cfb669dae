package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/auth/credentials"
	"github.com/dpytaylo/simple-messenger/internal/auth/provider"
	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/logger"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

// Client redirect targets after the OAuth callback.
const (
	authenticatedLandingPath   = "/auth/successfully_authenticated"
	registrationDetailsPath    = "/registration_details"
	registrationTypeEmailValue = "email"
)

type Handler struct {
	providers   *provider.Registry
	credentials *credentials.Service
	accounts    accounts.Store
	sessions    *session.Issuer
	state       kv.Store
	stateTTL    time.Duration
}

func NewHandler(
	providers *provider.Registry,
	credentialService *credentials.Service,
	accountStore accounts.Store,
	sessionIssuer *session.Issuer,
	stateStore kv.Store,
	stateTTL time.Duration,
) *Handler {
	return &Handler{
		providers:   providers,
		credentials: credentialService,
		accounts:    accountStore,
		sessions:    sessionIssuer,
		state:       stateStore,
		stateTTL:    stateTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/authenticate", h.Authenticate)
	r.POST("/register/identify", h.Identify)
	r.POST("/register", h.Register)
	r.POST("/auth/logout", h.Logout)
	r.GET("/oauth/:provider", h.OAuthRedirect)
	r.GET("/oauth/:provider/authorized", h.OAuthAuthorized)
}

// Logout deletes the session mapping and clears the cookie. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// Best effort: an expired token is already gone.
		if _, err := h.state.GetDel(c.Request.Context(), kv.NamespaceSessions, cookie.Value); err != nil &&
			!errors.Is(err, kv.ErrNotFound) {
			logger.Warn("logout: session delete failed", "error", err.Error())
		}
	}

	session.ClearSessionCookie(c.Writer)
	c.Status(http.StatusNoContent)
}
