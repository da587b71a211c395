package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authsvc/internal/models"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UserRepository is the SQLite UserStore.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*UserRepository)(nil)

const (
	userColumns = `id, username, password_hash, name, age, company, created_at, updated_at`

	insertUserSQL = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	updateProfileSQL = `UPDATE users SET name = ?, age = ?, company = ?, updated_at = ? WHERE username = ? RETURNING ` + userColumns
)

// Create inserts u. ID and timestamps are assigned when empty.
func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	u = withDefaults(u, time.Now())

	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Age, u.Company,
		u.CreatedAt.UnixMilli(), u.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			err = errors.Join(ErrUserExists, err)
		}
		return models.User{}, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return u, nil
}

// GetByUsername fetches a user by exact, case-sensitive username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// UpdateProfile overwrites name, age and company in a single statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, username string, p models.Profile) (models.User, error) {
	row := r.db.QueryRowContext(ctx, updateProfileSQL,
		p.Name, p.Age, p.Company, time.Now().UTC().UnixMilli(), username,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("update profile of %q: %w", username, err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u                    models.User
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Age, &u.Company, &createdAt, &updatedAt); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	u.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return u, nil
}

// withDefaults fills ID and timestamps so every store persists the same shape.
func withDefaults(u models.User, now time.Time) models.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	// millisecond precision is what the stores keep
	u.CreatedAt = u.CreatedAt.UTC().Truncate(time.Millisecond)
	u.UpdatedAt = u.UpdatedAt.UTC().Truncate(time.Millisecond)
	return u
}

func isSQLiteUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	switch liteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}
