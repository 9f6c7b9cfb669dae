package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/google/uuid"

	"github.com/dpytaylo/simple-messenger/internal/accounts"
	"github.com/dpytaylo/simple-messenger/internal/httpapi"
)

const (
	KindInvalidEmailOrPassword = "InvalidEmailOrPassword"
	KindAccountAlreadyExists   = "AccountAlreadyExists"
)

const minPasswordSize = 8

// The two denial errors share one client-facing kind so that responses do
// not reveal whether an email is registered. Logs keep them apart.
var (
	ErrAccountNotFound = &httpapi.Error{
		Status: http.StatusBadRequest,
		Kind:   KindInvalidEmailOrPassword,
		Err:    errors.New("the account does not exist"),
	}
	ErrInvalidPassword = &httpapi.Error{
		Status: http.StatusBadRequest,
		Kind:   KindInvalidEmailOrPassword,
		Err:    errors.New("invalid password"),
	}
	ErrAccountExists = &httpapi.Error{
		Status: http.StatusBadRequest,
		Kind:   KindAccountAlreadyExists,
		Err:    errors.New("account with the same email already exists"),
	}
)

type Service struct {
	accounts accounts.Store

	maxPasswordSize int
	maxNameSize     int
}

func NewService(store accounts.Store, maxPasswordSize, maxNameSize int) *Service {
	return &Service{
		accounts:        store,
		maxPasswordSize: maxPasswordSize,
		maxNameSize:     maxNameSize,
	}
}

// Authenticate verifies an email/password pair and returns the account id.
func (s *Service) Authenticate(ctx context.Context, email, password string) (uuid.UUID, error) {
	acct, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		return uuid.Nil, ErrAccountNotFound
	}
	if err != nil {
		return uuid.Nil, httpapi.Internal(fmt.Errorf("accounts lookup: %w", err))
	}

	// Accounts registered through an OAuth provider carry no hash.
	if acct.PasswordHash == "" {
		return uuid.Nil, ErrInvalidPassword
	}

	switch err := VerifyPassword(acct.PasswordHash, password); {
	case errors.Is(err, ErrPasswordMismatch):
		return uuid.Nil, ErrInvalidPassword
	case err != nil:
		return uuid.Nil, httpapi.Internal(fmt.Errorf("stored password hash: %w", err))
	}

	return acct.ID, nil
}

// Register creates an account with a freshly hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string) (uuid.UUID, error) {
	if err := s.ValidateEmail(email); err != nil {
		return uuid.Nil, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return uuid.Nil, err
	}
	if err := s.ValidateName(name); err != nil {
		return uuid.Nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return uuid.Nil, httpapi.Internal(err)
	}

	return s.create(ctx, accounts.NewAccount{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
}

// RegisterExternal creates a passwordless account for a user who arrived
// through an OAuth provider.
func (s *Service) RegisterExternal(ctx context.Context, email, name string) (uuid.UUID, error) {
	if err := s.ValidateEmail(email); err != nil {
		return uuid.Nil, err
	}
	if err := s.ValidateName(name); err != nil {
		return uuid.Nil, err
	}

	return s.create(ctx, accounts.NewAccount{Email: email, Name: name})
}

func (s *Service) create(ctx context.Context, acct accounts.NewAccount) (uuid.UUID, error) {
	// Pre-check keeps the common duplicate case off the insert path; the
	// store's unique constraint still decides races.
	_, err := s.accounts.FindByEmail(ctx, acct.Email)
	if err == nil {
		return uuid.Nil, ErrAccountExists
	}
	if !errors.Is(err, accounts.ErrNotFound) {
		return uuid.Nil, httpapi.Internal(fmt.Errorf("accounts lookup: %w", err))
	}

	created, err := s.accounts.Create(ctx, acct)
	if errors.Is(err, accounts.ErrEmailTaken) {
		return uuid.Nil, ErrAccountExists
	}
	if err != nil {
		return uuid.Nil, httpapi.Internal(fmt.Errorf("accounts create: %w", err))
	}
	return created.ID, nil
}

func (s *Service) ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return httpapi.BadRequest(httpapi.KindValidation, fmt.Errorf("invalid email address"))
	}
	return nil
}

func (s *Service) ValidatePassword(password string) error {
	if len(password) < minPasswordSize || len(password) > s.maxPasswordSize {
		return httpapi.BadRequest(httpapi.KindValidation,
			fmt.Errorf("password must be between %d and %d bytes", minPasswordSize, s.maxPasswordSize))
	}
	return nil
}

func (s *Service) ValidateName(name string) error {
	if len(name) < 1 || len(name) > s.maxNameSize {
		return httpapi.BadRequest(httpapi.KindValidation,
			fmt.Errorf("name must be between 1 and %d bytes", s.maxNameSize))
	}
	return nil
}
