package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dpytaylo/simple-messenger/internal/kv"
)

// Issuer mints session tokens, persists the token→account mapping with a
// fixed TTL, and attaches the token to the client via the session cookie.
type Issuer struct {
	tokens *TokenSource
	store  kv.Store
	ttl    time.Duration
}

func NewIssuer(tokens *TokenSource, store kv.Store, ttl time.Duration) *Issuer {
	return &Issuer{
		tokens: tokens,
		store:  store,
		ttl:    ttl,
	}
}

// Issue mints a fresh token for the account. Every call produces a new
// token; concurrent sessions for one account are never coalesced.
func (i *Issuer) Issue(ctx context.Context, w http.ResponseWriter, accountID uuid.UUID) error {
	token := i.tokens.Token()

	if err := i.store.Set(ctx, kv.NamespaceSessions, token, accountID.String(), i.ttl); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}

	SetSessionCookie(w, token)
	return nil
}
