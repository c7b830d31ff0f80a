package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists POS data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the operations that must land in one database
// transaction: the sale record, its items, and every stock decrement.
type TxRepository interface {
	InsertTransaction(ctx context.Context, tx Transaction) error
	InsertTransactionItems(ctx context.Context, txID string, items []CartLine) error
	DecrementStock(ctx context.Context, productID string, qty int64) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListProducts loads the catalog snapshot for the cashier screen.
func (r *Repository) ListProducts(ctx context.Context) ([]ProductSnapshot, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, category_id, supplier_id, price, cost, stock FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []ProductSnapshot
	for rows.Next() {
		var p ProductSnapshot
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.SupplierID, &p.Price, &p.Cost, &p.Stock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct reads a single product with its current stock.
func (r *Repository) GetProduct(ctx context.Context, id string) (ProductSnapshot, error) {
	var p ProductSnapshot
	err := r.pool.QueryRow(ctx, `SELECT id, name, category_id, supplier_id, price, cost, stock FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.CategoryID, &p.SupplierID, &p.Price, &p.Cost, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductSnapshot{}, ErrProductNotFound
		}
		return ProductSnapshot{}, err
	}
	return p, nil
}

// ListCategories loads the category filter strip.
func (r *Repository) ListCategories(ctx context.Context) ([]CategoryRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []CategoryRef
	for rows.Next() {
		var c CategoryRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ListActivePromotions loads vouchers selectable at checkout.
func (r *Repository) ListActivePromotions(ctx context.Context) ([]Promotion, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, type, value, status, description FROM promotions WHERE status = 'active' ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []Promotion
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.Code, &p.Type, &p.Value, &p.Status, &p.Description); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

// GetStoreInfo reads the receipt header profile.
func (r *Repository) GetStoreInfo(ctx context.Context) (StoreInfo, error) {
	var info StoreInfo
	err := r.pool.QueryRow(ctx, `SELECT name, address, phone FROM stores LIMIT 1`).
		Scan(&info.Name, &info.Address, &info.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoreInfo{}, nil
		}
		return StoreInfo{}, err
	}
	return info, nil
}

// ListTransactions loads the most recent committed sales with their frozen
// line items, newest first.
func (r *Repository) ListTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cashier_name, payment_method, voucher_code, subtotal, discount, total, profit, created_at, updated_at
		FROM pos_transactions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	index := make(map[string]int)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.CashierName, &t.PaymentMethod, &t.VoucherCode,
			&t.Subtotal, &t.Discount, &t.Total, &t.Profit, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		index[t.ID] = len(txns)
		ids = append(ids, t.ID)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT transaction_id, product_id, name, price, cost, quantity
		FROM pos_transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_order`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			txID string
			line CartLine
		)
		if err := itemRows.Scan(&txID, &line.Product.ID, &line.Product.Name,
			&line.Product.Price, &line.Product.Cost, &line.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[txID]; ok {
			txns[i].Items = append(txns[i].Items, line)
		}
	}
	return txns, itemRows.Err()
}

// GetTransaction loads one committed sale with its items.
func (r *Repository) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var t Transaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, cashier_name, payment_method, voucher_code, subtotal, discount, total, profit, created_at, updated_at
		FROM pos_transactions WHERE id = $1`, id).
		Scan(&t.ID, &t.CashierName, &t.PaymentMethod, &t.VoucherCode,
			&t.Subtotal, &t.Discount, &t.Total, &t.Profit, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, name, price, cost, quantity
		FROM pos_transaction_items
		WHERE transaction_id = $1
		ORDER BY line_order`, id)
	if err != nil {
		return Transaction{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CartLine
		if err := rows.Scan(&line.Product.ID, &line.Product.Name,
			&line.Product.Price, &line.Product.Cost, &line.Quantity); err != nil {
			return Transaction{}, err
		}
		t.Items = append(t.Items, line)
	}
	return t, rows.Err()
}

func (r *txRepo) InsertTransaction(ctx context.Context, tx Transaction) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO pos_transactions (id, cashier_name, payment_method, voucher_code, subtotal, discount, total, profit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tx.ID, tx.CashierName, string(tx.PaymentMethod), tx.VoucherCode,
		tx.Subtotal, tx.Discount, tx.Total, tx.Profit, tx.CreatedAt, tx.UpdatedAt,
	)
	return err
}

func (r *txRepo) InsertTransactionItems(ctx context.Context, txID string, items []CartLine) error {
	for i, item := range items {
		_, err := r.tx.Exec(ctx, `
			INSERT INTO pos_transaction_items (transaction_id, product_id, name, price, cost, quantity, line_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			txID, item.Product.ID, item.Product.Name, item.Product.Price, item.Product.Cost, item.Quantity, i+1,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepo) DecrementStock(ctx context.Context, productID string, qty int64) error {
	tag, err := r.tx.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	return nil
}
