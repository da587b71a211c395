package repository

import (
	"context"
	"database/sql"
	"errors"

	"authsvc/internal/models"
)

// Errors returned by every UserStore implementation.
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the credential store. Username uniqueness is enforced by the
// storage layer: Create fails with ErrUserExists when the username is taken,
// including when two Creates race.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error)
}

type Repository struct {
	Users UserStore
}

// NewRepository wires the SQLite-backed stores.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
	}
}

// NewPostgresRepository wires the Postgres-backed stores.
func NewPostgresRepository(pool PgxQuerier) *Repository {
	return &Repository{
		Users: NewPostgresUserRepository(pool),
	}
}
