package service

import (
	"context"

	"authsvc/internal/models"
	"authsvc/internal/repository"
)

// Authorization covers the credential and session flows.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error)
	ParseToken(token string) (string, error)
}

// PublicAPI exposes the filtered public API directory.
type PublicAPI interface {
	List(ctx context.Context, f EntryFilter) ([]models.PublicEntry, error)
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Authorization
	PublicAPI
}

// Deps are the collaborators that do not come from the repository layer.
type Deps struct {
	Hasher  PasswordHasher
	Tokens  Tokens
	Entries EntriesSource
}

// NewService wires the repository layer and deps into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, deps.Hasher, deps.Tokens),
		PublicAPI:     NewPublicAPIService(deps.Entries),
	}
}
