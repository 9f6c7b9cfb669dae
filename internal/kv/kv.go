// Package kv is the expiring key-value store behind sessions and transient
// OAuth state. Keys live in namespaces so the two concerns never collide.
package kv

import (
	"context"
	"errors"
	"time"
)

type Namespace string

const (
	NamespaceSessions   Namespace = "session"
	NamespaceOAuthState Namespace = "oauth_state"
)

var ErrNotFound = errors.New("kv: key not found")

// Store is a remote cache with per-entry expiry. Each call is a single
// atomic operation; in particular GetDel must consume the key so that two
// concurrent callers cannot both observe the same value.
type Store interface {
	Set(ctx context.Context, ns Namespace, key, value string, ttl time.Duration) error

	// Get returns ErrNotFound for absent or expired keys.
	Get(ctx context.Context, ns Namespace, key string) (string, error)

	// GetDel atomically reads and removes the key, returning ErrNotFound
	// if it was absent or expired.
	GetDel(ctx context.Context, ns Namespace, key string) (string, error)
}
