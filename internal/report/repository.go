package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads committed sales from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListSales loads every committed transaction with its items. Rows whose
// created_at is NULL come back with a zero PostedAt and are left to the
// aggregator to drop.
func (r *Repository) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, total, profit, created_at FROM pos_transactions ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []Sale
	index := make(map[string]int)
	for rows.Next() {
		var (
			id        string
			sale      Sale
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &sale.Total, &sale.Profit, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			sale.PostedAt = createdAt.Time
		}
		index[id] = len(sales)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT transaction_id, product_id, name, price, quantity
		FROM pos_transaction_items
		ORDER BY transaction_id, line_order`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			txID string
			item SaleItem
		)
		if err := itemRows.Scan(&txID, &item.ProductID, &item.Name, &item.PriceAtSale, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[txID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}
	return sales, itemRows.Err()
}
