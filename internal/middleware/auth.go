package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dpytaylo/simple-messenger/internal/kv"
	"github.com/dpytaylo/simple-messenger/internal/logger"
	"github.com/dpytaylo/simple-messenger/internal/session"
)

// unexported, collision-proof context key
type accountIDContextKeyType struct{}

var accountIDKey = accountIDContextKeyType{}

// AccountIDFromContext extracts the authenticated account id attached by
// the session resolver.
func AccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return id, ok
}

// SessionResolver resolves the session cookie once per request. It never
// denies a request itself; downstream handlers decide whether an identity
// is required. Expiry is the store's job, the resolver never refreshes a
// token.
type SessionResolver struct {
	store kv.Store
}

func NewSessionResolver(store kv.Store) *SessionResolver {
	return &SessionResolver{store: store}
}

func (s *SessionResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			// No session token: anonymous request.
			next.ServeHTTP(w, r)
			return
		}

		raw, err := s.store.Get(r.Context(), kv.NamespaceSessions, cookie.Value)
		if errors.Is(err, kv.ErrNotFound) {
			// Dead token; stop the client presenting it.
			session.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			// Store trouble denies this identity, not the request.
			logger.Warn("session lookup failed", "error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		accountID, err := uuid.Parse(raw)
		if err != nil {
			logger.Error("session maps to malformed account id", "error", err.Error())
			session.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), accountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
