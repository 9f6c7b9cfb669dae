package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/httpapi"
	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/logger"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

const kindInvalidOrExpiredState = "InvalidOrExpiredState"

// OAuthRedirect starts the authorization-code + PKCE flow: it stores
// state→verifier with a short TTL and bounces the client to the provider.
func (h *Handler) OAuthRedirect(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		httpapi.Respond(c, httpapi.BadRequest("UnknownProvider", err))
		return
	}

	state, err := generateState()
	if err != nil {
		httpapi.Respond(c, httpapi.Internal(err))
		return
	}
	verifier := oauth2.GenerateVerifier()

	if err := h.state.Set(c.Request.Context(), kv.NamespaceOAuthState, state, verifier, h.stateTTL); err != nil {
		httpapi.Respond(c, httpapi.Internal(fmt.Errorf("persist oauth state: %w", err)))
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, verifier))
}

// OAuthAuthorized handles the provider callback. The state entry is
// consumed atomically, so a replayed or forged callback fails before any
// provider traffic happens. A failed exchange does not restore the state;
// the client restarts from OAuthRedirect.
func (h *Handler) OAuthAuthorized(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		httpapi.Respond(c, httpapi.BadRequest("UnknownProvider", err))
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation,
			errors.New("callback missing code or state")))
		return
	}

	verifier, err := h.state.GetDel(c.Request.Context(), kv.NamespaceOAuthState, state)
	if errors.Is(err, kv.ErrNotFound) {
		httpapi.Respond(c, httpapi.BadRequest(kindInvalidOrExpiredState,
			errors.New("oauth state is invalid, expired, or already used")))
		return
	}
	if err != nil {
		httpapi.Respond(c, httpapi.Internal(fmt.Errorf("oauth state lookup: %w", err)))
		return
	}

	token, err := p.Exchange(c.Request.Context(), code, verifier)
	if err != nil {
		httpapi.Respond(c, httpapi.Internal(fmt.Errorf("token exchange failed: %w", err)))
		return
	}

	profile, err := p.Profile(c.Request.Context(), token)
	if err != nil {
		httpapi.Respond(c, httpapi.Internal(fmt.Errorf("provider request failed: %w", err)))
		return
	}

	// The token was only bridging material. Revocation failure is not
	// worth aborting an otherwise complete flow.
	if err := p.Revoke(c.Request.Context(), token); err != nil {
		logger.Warn("oauth token revocation failed",
			"provider", p.Name(),
			"error", err.Error(),
		)
	}

	acct, err := h.accounts.FindByEmail(c.Request.Context(), profile.Email)
	if errors.Is(err, accounts.ErrNotFound) {
		// Unknown email: a name is still required, so no session yet.
		session.SetBridgeCookie(c.Writer, session.RegistrationEmailCookie, profile.Email)
		session.SetBridgeCookie(c.Writer, session.RegistrationTypeCookie, p.Name())
		c.Redirect(http.StatusFound, registrationDetailsPath)
		return
	}
	if err != nil {
		httpapi.Respond(c, httpapi.Internal(fmt.Errorf("accounts lookup: %w", err)))
		return
	}

	if err := h.sessions.Issue(c.Request.Context(), c.Writer, acct.ID); err != nil {
		httpapi.Respond(c, httpapi.Internal(err))
		return
	}

	logger.Info("oauth authenticated", "provider", p.Name(), "account_id", acct.ID.String())
	c.Redirect(http.StatusFound, authenticatedLandingPath)
}
