package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(plain, digest string) bool
}

// TokenIssuer issues and verifies bearer tokens
type TokenIssuer interface {
	IssueToken(subject string) (string, error)
	VerifyToken(token string) (subject string, ok bool)
}

// Authenticator is the credential store as seen by the account service
type Authenticator interface {
	PasswordHasher
	TokenIssuer
}

// AccountService defines the interface for account business logic
type AccountService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Whoami(ctx context.Context, token string) (*domain.User, error)
}

type accountService struct {
	store       repository.Store
	credentials Authenticator
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(store repository.Store, credentials Authenticator) AccountService {
	return &accountService{
		store:       store,
		credentials: credentials,
	}
}

// Register creates a new account with a hashed password
func (s *accountService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	users := s.store.Users()

	// Check if user already exists
	existing, err := users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := s.credentials.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// A concurrent registration can still win; Create maps that to ErrEmailTaken
	user, err := users.Create(ctx, email, hashed)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and returns a bearer token. Unknown emails
// and wrong passwords fail identically.
func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.credentials.VerifyPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.credentials.IssueToken(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Whoami resolves the user a token was issued to
func (s *accountService) Whoami(ctx context.Context, token string) (*domain.User, error) {
	subject, ok := s.credentials.VerifyToken(token)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
