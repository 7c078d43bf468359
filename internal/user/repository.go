// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/drycleaning-api/internal/auth"
	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

// errOwnerTaken means a concurrent creator won the owner slot between our
// existence check and our insert.
var errOwnerTaken = errors.New("owner slot taken concurrently")

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.Role,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		switch {
		case core.IsUniqueViolation(err, singleOwnerConstraint):
			return fmt.Errorf("create user: %w", errOwnerTaken)
		case core.IsUniqueViolation(err, emailConstraint):
			return fmt.Errorf("create user: %w", auth.ErrEmailExists)
		case core.IsUniqueViolation(err, ""):
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &account, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Account, error) {
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1`

	var account Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &account, nil
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	query := `
		SELECT id, email, name, role, created_at, updated_at
		FROM users
		ORDER BY created_at, id`

	accounts := []Account{}
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return accounts, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Exists(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users)`); err != nil {
		return false, fmt.Errorf("check users exist: %w", err)
	}

	return exists, nil
}

// Transactor runs fn against a repository bound to one SERIALIZABLE
// transaction.
type Transactor interface {
	InSerializableTx(ctx context.Context, fn func(repo Repository) error) error
}

type sqlTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) InSerializableTx(
	ctx context.Context,
	fn func(repo Repository) error,
) error {
	return core.InSerializableTx(ctx, t.db, func(tx *sqlx.Tx) error {
		return fn(NewRepository(tx))
	})
}
