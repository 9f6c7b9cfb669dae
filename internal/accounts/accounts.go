// Package accounts is the persistent user store. The auth components only
// ever talk to it through the Store interface.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("accounts: not found")
	ErrEmailTaken = errors.New("accounts: email already registered")
)

type Account struct {
	ID    uuid.UUID
	Email string

	// PasswordHash is empty for accounts registered through an OAuth
	// provider; they have no password to verify.
	PasswordHash string

	Name      string
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewAccount struct {
	Email        string
	PasswordHash string
	Name         string
}

type Store interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// Create fails with ErrEmailTaken if the email is already registered.
	// The store's unique constraint is the authoritative conflict check.
	Create(ctx context.Context, acct NewAccount) (*Account, error)
}
