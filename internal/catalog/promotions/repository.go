package promotions

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasira-pos/kasira-pos/internal/catalog/shared"
	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Promotion, int, error)
	Get(ctx context.Context, id string) (Promotion, error)
	Create(ctx context.Context, promotion Promotion) (Promotion, error)
	Update(ctx context.Context, id string, promotion Promotion) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const promotionColumns = `id, code, type, value, status, description, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Promotion, int, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (code ILIKE $` + strconv.Itoa(argCount) + ` OR description ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, *filters.Status)
	}

	countQuery := `SELECT COUNT(*) FROM promotions WHERE 1=1`
	countArgs := []interface{}{}
	countArgCount := 0
	if filters.Search != "" {
		countArgCount++
		countQuery += ` AND (code ILIKE $` + strconv.Itoa(countArgCount) + ` OR description ILIKE $` + strconv.Itoa(countArgCount) + `)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		countArgCount++
		countQuery += ` AND status = $` + strconv.Itoa(countArgCount)
		countArgs = append(countArgs, *filters.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + filters.SortOrder("code", "created_at")

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var promotions []Promotion
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.Code, &p.Type, &p.Value, &p.Status, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		promotions = append(promotions, p)
	}
	return promotions, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Promotion, error) {
	var p Promotion
	err := r.db.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id).
		Scan(&p.ID, &p.Code, &p.Type, &p.Value, &p.Status, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Promotion{}, internalShared.ErrNotFound
		}
		return Promotion{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, promotion Promotion) (Promotion, error) {
	now := time.Now().UTC()
	promotion.ID = uuid.NewString()
	query := `INSERT INTO promotions (id, code, type, value, status, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.Exec(ctx, query, promotion.ID, promotion.Code, promotion.Type, promotion.Value, promotion.Status, promotion.Description, now, now); err != nil {
		return Promotion{}, mapUniqueViolation(err)
	}
	promotion.CreatedAt = now
	promotion.UpdatedAt = now
	return promotion, nil
}

func (r *repository) Update(ctx context.Context, id string, promotion Promotion) error {
	query := `UPDATE promotions SET code = $1, type = $2, value = $3, status = $4, description = $5, updated_at = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, promotion.Code, promotion.Type, promotion.Value, promotion.Status, promotion.Description, time.Now().UTC(), id)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}
