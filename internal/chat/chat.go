// Package chat reserves the messaging surface. The feature is not built
// yet; every route answers NotImplemented.
package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpytaylo/simple-messenger/internal/httpapi"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/channels", h.notImplemented)
	api.GET("/channels/:channel/messages", h.notImplemented)
	api.POST("/channels/:channel/messages", h.notImplemented)
}

func (h *Handler) notImplemented(c *gin.Context) {
	httpapi.Respond(c, &httpapi.Error{
		Status: http.StatusNotImplemented,
		Kind:   "NotImplemented",
		Err:    errors.New("chat is not implemented"),
	})
}
