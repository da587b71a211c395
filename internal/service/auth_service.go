package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"authsvc/internal/models"
	"authsvc/internal/repository"
)

// RegisterInput is everything needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	models.Profile
}

// Tokens mints and verifies session tokens.
type Tokens interface {
	Mint(username string) (string, error)
	Verify(token string) (string, error)
}

// AuthService handles registration, login and profile updates.
type AuthService struct {
	users  repository.UserStore
	hasher PasswordHasher
	tokens Tokens

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserStore, hasher PasswordHasher, tokens Tokens) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register validates in, hashes the password and creates the user. The
// uniqueness pre-check only short-circuits the hash; the store constraint
// decides races.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	var check fieldChecker
	check.require("name", present(in.Name))
	check.require("age", in.Age != 0)
	check.require("company", present(in.Company))
	check.require("username", present(in.Username))
	check.require("password", present(in.Password) && len(in.Password) <= MaxPasswordBytes)
	if err := check.err(); err != nil {
		return models.User{}, err
	}

	_, err := s.users.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return models.User{}, ErrUserExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return models.User{}, fmt.Errorf("%w: lookup user: %w", ErrInternal, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u, err := s.users.Create(ctx, models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Age:          in.Age,
		Company:      in.Company,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return u, nil
}

// Login checks the credentials and returns a session token. Unknown user and
// wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var check fieldChecker
	check.require("username", present(username))
	check.require("password", password != "")
	if err := check.err(); err != nil {
		return "", err
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.burnVerify(password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: lookup user: %w", ErrInternal, err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(u.Username)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return token, nil
}

// UpdateProfile overwrites name, age and company of username.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error) {
	var check fieldChecker
	check.require("name", present(p.Name))
	check.require("age", p.Age != 0)
	check.require("company", present(p.Company))
	if err := check.err(); err != nil {
		return models.User{}, err
	}

	u, err := s.users.UpdateProfile(ctx, username, p)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return u, nil
}

// ParseToken returns the username bound to token.
func (s *AuthService) ParseToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// burnVerify spends one hash comparison so an unknown username costs about
// as much as a wrong password.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("authsvc-timing-equalizer")
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
