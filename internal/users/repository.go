package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasira-pos/kasira-pos/internal/shared"
)

// ErrDuplicateEmail reports an email collision on create.
var ErrDuplicateEmail = errors.New("email already registered")

type Repository interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, account Account, passwordHash string) (Account, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, role, is_active, created_at, updated_at
		FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.Name, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, account Account, passwordHash string) (Account, error) {
	now := time.Now().UTC()
	account.ID = uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.Email, account.Name, account.Role, passwordHash, account.IsActive, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrDuplicateEmail
		}
		return Account{}, err
	}
	account.CreatedAt = now
	account.UpdatedAt = now
	return account, nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`, active, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
