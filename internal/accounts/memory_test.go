package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndFind(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, NewAccount{
		Email:        "Alice@example.com",
		PasswordHash: "$scrypt$...",
		Name:         "alice",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := store.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, NewAccount{Email: "bob@example.com", Name: "bob"})
	require.NoError(t, err)

	_, err = store.Create(ctx, NewAccount{Email: "BOB@example.com", Name: "impostor"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, NewAccount{Email: "carol@example.com", Name: "carol"})
	require.NoError(t, err)

	created.Name = "mangled"

	fresh, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", fresh.Name)
}
