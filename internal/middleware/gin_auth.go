package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpytaylo/simple-messenger/internal/httpapi"
)

// GinResolveSession adapts the net/http session resolver to Gin. The
// resolver runs before route dispatch on every request.
func GinResolveSession(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler so the net/http middleware can wrap the Gin chain
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		resolver.Resolve(next).ServeHTTP(c.Writer, c.Request)
	}
}

// GinRequireAuth rejects requests that carry no resolved identity.
func GinRequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := AccountIDFromContext(c.Request.Context()); !ok {
			httpapi.Respond(c, httpapi.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}
