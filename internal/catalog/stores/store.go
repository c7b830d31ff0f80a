// Package stores manages the single store profile printed on receipts.
package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

// Store is the receipt header profile. A deployment has exactly one row;
// Save upserts it.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context) (Store, error)
	Save(ctx context.Context, store Store) (Store, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (Store, error) {
	var s Store
	err := r.db.QueryRow(ctx, `SELECT id, name, address, phone, updated_at FROM stores LIMIT 1`).
		Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Store{}, internalShared.ErrNotFound
		}
		return Store{}, err
	}
	return s, nil
}

func (r *repository) Save(ctx context.Context, store Store) (Store, error) {
	existing, err := r.Get(ctx)
	switch {
	case err == nil:
		store.ID = existing.ID
	case errors.Is(err, internalShared.ErrNotFound):
		store.ID = uuid.NewString()
	default:
		return Store{}, err
	}

	store.UpdatedAt = time.Now().UTC()
	query := `
		INSERT INTO stores (id, name, address, phone, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $2, address = $3, phone = $4, updated_at = $5`
	if _, err := r.db.Exec(ctx, query, store.ID, store.Name, store.Address, store.Phone, store.UpdatedAt); err != nil {
		return Store{}, err
	}
	return store, nil
}
