package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const accountColumns = `
	id, email, COALESCE(password_hash, ''), name, COALESCE(avatar, ''),
	created_at, updated_at
`

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanAccount(row)
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanAccount(row)
}

func (s *PostgresStore) Create(ctx context.Context, acct NewAccount) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING `+accountColumns+`
	`, acct.Email, acct.PasswordHash, acct.Name)

	created, err := scanAccount(row)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return nil, ErrEmailTaken
	}
	return created, err
}

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Avatar,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("accounts: scan: %w", err)
	}
	return &a, nil
}
