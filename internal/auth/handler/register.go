package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dpytaylo/simple-messenger/internal/httpapi"
	"github.com/dpytaylo/simple-messenger/internal/logger"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

type identifyRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

// Identify is the first step of email registration: it validates the
// credentials and stages them in bridge cookies for the details step. No
// account is created yet.
func (h *Handler) Identify(c *gin.Context) {
	var req identifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation, fmt.Errorf("invalid request body: %w", err)))
		return
	}

	if err := h.credentials.ValidateEmail(req.Email); err != nil {
		httpapi.Respond(c, err)
		return
	}
	if err := h.credentials.ValidatePassword(req.Password); err != nil {
		httpapi.Respond(c, err)
		return
	}
	if req.Password != req.Confirm {
		httpapi.Respond(c, httpapi.BadRequest("PasswordsDoNotMatch", errors.New("passwords are not the same")))
		return
	}

	session.SetBridgeCookie(c.Writer, session.RegistrationEmailCookie, req.Email)
	session.SetBridgeCookie(c.Writer, session.RegistrationTypeCookie, registrationTypeEmailValue)
	session.SetBridgeCookie(c.Writer, session.RegistrationPasswordCookie, req.Password)

	c.JSON(http.StatusOK, gin.H{"next": registrationDetailsPath})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name" binding:"required"`
}

// Register creates the account and issues a session. Email and password
// may arrive in the body (one-shot registration) or, when the body carries
// only a name, in the bridge cookies staged by Identify or by the OAuth
// callback. Bridged values are client-held and re-validated here.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation, fmt.Errorf("invalid request body: %w", err)))
		return
	}

	email := req.Email
	password := req.Password
	registrationType := registrationTypeEmailValue

	if email == "" {
		email = cookieValue(c, session.RegistrationEmailCookie)
		password = cookieValue(c, session.RegistrationPasswordCookie)
		registrationType = cookieValue(c, session.RegistrationTypeCookie)

		if email == "" || registrationType == "" {
			httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation,
				errors.New("no registration in progress")))
			return
		}
	}

	var (
		accountID uuid.UUID
		err       error
	)
	if registrationType == registrationTypeEmailValue {
		accountID, err = h.credentials.Register(c.Request.Context(), email, password, req.Name)
	} else {
		// The type must name a configured provider; anything else is a
		// forged cookie.
		if _, provErr := h.providers.Get(registrationType); provErr != nil {
			httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation,
				fmt.Errorf("unknown registration type %q", registrationType)))
			return
		}
		accountID, err = h.credentials.RegisterExternal(c.Request.Context(), email, req.Name)
	}
	if err != nil {
		httpapi.Respond(c, err)
		return
	}

	session.ClearBridgeCookies(c.Writer)

	if err := h.sessions.Issue(c.Request.Context(), c.Writer, accountID); err != nil {
		httpapi.Respond(c, httpapi.Internal(err))
		return
	}

	logger.Info("registered", "account_id", accountID.String(), "type", registrationType)
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

func cookieValue(c *gin.Context, name string) string {
	cookie, err := c.Request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
