package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpytaylo/simple-messenger/internal/httpapi"
	"github.com/dpytaylo/simple-messenger/internal/logger"
)

type authenticateRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Authenticate verifies an email/password pair and issues a session.
func (h *Handler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.Respond(c, httpapi.BadRequest(httpapi.KindValidation, fmt.Errorf("invalid request body: %w", err)))
		return
	}

	accountID, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.Respond(c, err)
		return
	}

	if err := h.sessions.Issue(c.Request.Context(), c.Writer, accountID); err != nil {
		httpapi.Respond(c, httpapi.Internal(err))
		return
	}

	logger.Info("authenticated", "account_id", accountID.String())
	c.JSON(http.StatusOK, gin.H{"status": "authenticated"})
}
