package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authsvc/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxQuerier is the subset of *pgxpool.Pool the Postgres store needs.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUserRepository is the Postgres UserStore.
type PostgresUserRepository struct {
	db PgxQuerier
}

func NewPostgresUserRepository(db PgxQuerier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ UserStore = (*PostgresUserRepository)(nil)

const (
	pgInsertUserSQL = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	pgSelectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	pgUpdateProfileSQL = `UPDATE users SET name = $1, age = $2, company = $3, updated_at = $4 WHERE username = $5 RETURNING ` + userColumns
)

func (r *PostgresUserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	u = withDefaults(u, time.Now())

	_, err := r.db.Exec(ctx, pgInsertUserSQL,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Age, u.Company, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			err = errors.Join(ErrUserExists, err)
		}
		return models.User{}, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanPgUser(r.db.QueryRow(ctx, pgSelectUserByUsernameSQL, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	u, err := scanPgUser(r.db.QueryRow(ctx, pgUpdateProfileSQL, p.Name, p.Age, p.Company, now, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("update profile of %q: %w", username, err)
	}
	return u, nil
}

func scanPgUser(row pgx.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Age, &u.Company, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
