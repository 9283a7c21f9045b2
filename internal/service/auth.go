package service

import (
	"context"
	"errors"
	"strings"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already taken")
)

// AccountStore is the persistence AuthService needs.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}

// AuthService handles account registration and login.
type AuthService struct {
	accounts AccountStore
	hasher   *crypto.Hasher
	tokens   *crypto.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts AccountStore, hasher *crypto.Hasher, tokens *crypto.TokenIssuer) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}
	if len(req.Password) < crypto.MinLength {
		return model.AuthResponse{}, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	account := &model.Account{Email: email, AuthHash: hash}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.respond(account)
}

// Login authenticates an account and returns an auth token.
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (model.AuthResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, account.AuthHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.respond(account)
}

// GetAccount retrieves an account by ID and returns safe account data.
func (s *AuthService) GetAccount(ctx context.Context, id int64) (model.AccountResponse, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.AccountResponse{}, err
	}
	return toAccountResponse(account), nil
}

func (s *AuthService) respond(account *model.Account) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, Account: toAccountResponse(account)}, nil
}

func toAccountResponse(a *model.Account) model.AccountResponse {
	return model.AccountResponse{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
