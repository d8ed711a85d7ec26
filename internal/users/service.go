package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jstrand/papertrader/internal/auth"
)

var ErrInvalidCredentials = errors.New("users: invalid credentials")

// Service handles registration and login. Everything past this boundary
// works with an already-resolved user id.
type Service struct {
	repo         Repository
	tokens       *auth.Manager
	startingCash decimal.Decimal
}

func NewService(repo Repository, tokens *auth.Manager, startingCash decimal.Decimal) *Service {
	return &Service{repo: repo, tokens: tokens, startingCash: startingCash}
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if username == "" || password == "" {
		return User{}, fmt.Errorf("%w: username and password are required", ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.Create(ctx, username, string(hash), s.startingCash)
}

// Login verifies credentials and issues a signed token carrying the user id.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", User{}, fmt.Errorf("generating token: %w", err)
	}

	return token, user, nil
}
