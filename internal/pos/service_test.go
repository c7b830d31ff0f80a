package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memoryRepo backs the service with an in-memory catalog and replicates the
// all-or-nothing semantics of the database transaction: stock decrements are
// staged and only applied when the whole callback succeeds.
type memoryRepo struct {
	products   map[string]*ProductSnapshot
	categories []CategoryRef
	promotions []Promotion
	store      StoreInfo

	committed []Transaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: make(map[string]*ProductSnapshot)}
}

func (r *memoryRepo) addProduct(p ProductSnapshot) {
	cp := p
	r.products[p.ID] = &cp
}

func (r *memoryRepo) ListProducts(ctx context.Context) ([]ProductSnapshot, error) {
	out := make([]ProductSnapshot, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memoryRepo) GetProduct(ctx context.Context, id string) (ProductSnapshot, error) {
	p, ok := r.products[id]
	if !ok {
		return ProductSnapshot{}, ErrProductNotFound
	}
	return *p, nil
}

func (r *memoryRepo) ListCategories(ctx context.Context) ([]CategoryRef, error) {
	return r.categories, nil
}

func (r *memoryRepo) ListActivePromotions(ctx context.Context) ([]Promotion, error) {
	return r.promotions, nil
}

func (r *memoryRepo) GetStoreInfo(ctx context.Context) (StoreInfo, error) {
	return r.store, nil
}

func (r *memoryRepo) ListTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	var out []Transaction
	for i := len(r.committed) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.committed[i])
	}
	return out, nil
}

func (r *memoryRepo) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	for _, txn := range r.committed {
		if txn.ID == id {
			return txn, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

type memoryTx struct {
	repo       *memoryRepo
	txn        *Transaction
	decrements map[string]int64
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r, decrements: make(map[string]int64)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, qty := range tx.decrements {
		r.products[id].Stock -= qty
	}
	if tx.txn != nil {
		r.committed = append(r.committed, *tx.txn)
	}
	return nil
}

func (t *memoryTx) InsertTransaction(ctx context.Context, txn Transaction) error {
	t.txn = &txn
	return nil
}

func (t *memoryTx) InsertTransactionItems(ctx context.Context, txID string, items []CartLine) error {
	return nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, productID string, qty int64) error {
	p, ok := t.repo.products[productID]
	if !ok {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	if p.Stock-t.decrements[productID]-qty < 0 {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	t.decrements[productID] += qty
	return nil
}

func newTestService(repo *memoryRepo) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestCheckoutCommitsSaleAndDecrementsStock(t *testing.T) {
	repo := newMemoryRepo()
	repo.addProduct(ProductSnapshot{ID: "p1", Name: "Kopi Susu", Price: 15000, Cost: 6000, Stock: 10})
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	_, err = svc.ChangeQuantity("sess", "p1", 1)
	require.NoError(t, err)

	txn, err := svc.Checkout(ctx, "sess", PaymentCash, "Kasir Satu")
	require.NoError(t, err)

	require.Equal(t, int64(30000), txn.Subtotal)
	require.Equal(t, int64(0), txn.Discount)
	require.Equal(t, int64(30000), txn.Total)
	// Profit is total minus summed cost: 30000 - 12000.
	require.Equal(t, int64(18000), txn.Profit)
	require.Equal(t, "Kasir Satu", txn.CashierName)
	require.Contains(t, txn.ID, "txn_")

	require.Equal(t, int64(8), repo.products["p1"].Stock)
	require.Len(t, repo.committed, 1)

	// A successful commit clears the cart.
	view := svc.ViewCart("sess")
	require.Empty(t, view.Lines)
}

func TestCheckoutAppliesVoucher(t *testing.T) {
	repo := newMemoryRepo()
	repo.addProduct(ProductSnapshot{ID: "p1", Name: "Kopi Susu", Price: 50000, Cost: 20000, Stock: 10})
	repo.promotions = []Promotion{{ID: "v1", Code: "HEMAT10", Type: PromotionPercent, Value: 1000, Status: "active"}}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	_, err = svc.ApplyVoucher(ctx, "sess", "HEMAT10")
	require.NoError(t, err)

	txn, err := svc.Checkout(ctx, "sess", PaymentGopay, "Kasir")
	require.NoError(t, err)

	require.Equal(t, int64(5000), txn.Discount)
	require.Equal(t, int64(45000), txn.Total)
	require.NotNil(t, txn.VoucherCode)
	require.Equal(t, "HEMAT10", *txn.VoucherCode)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Checkout(context.Background(), "sess", PaymentCash, "Kasir")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInvalidPayment(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Checkout(context.Background(), "sess", PaymentMethod("bitcoin"), "Kasir")
	require.ErrorIs(t, err, ErrInvalidPayment)
}

func TestCheckoutInsufficientStockKeepsCart(t *testing.T) {
	repo := newMemoryRepo()
	repo.addProduct(ProductSnapshot{ID: "p1", Name: "Kopi Susu", Price: 15000, Cost: 6000, Stock: 2})
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	_, err = svc.ChangeQuantity("sess", "p1", 1)
	require.NoError(t, err)

	// Another terminal sold the stock between snapshot and commit.
	repo.products["p1"].Stock = 1

	_, err = svc.Checkout(ctx, "sess", PaymentCash, "Kasir")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing persisted and the cart survives for a retry.
	require.Empty(t, repo.committed)
	require.Equal(t, int64(1), repo.products["p1"].Stock)
	view := svc.ViewCart("sess")
	require.Len(t, view.Lines, 1)
}

func TestCartMutationRejectedDuringCommit(t *testing.T) {
	store := NewCartStore()
	require.NoError(t, store.AddItem("sess", ProductSnapshot{ID: "p1", Price: 5000, Stock: 5}))

	_, _, err := store.BeginCommit("sess")
	require.NoError(t, err)

	err = store.AddItem("sess", ProductSnapshot{ID: "p2", Price: 3000, Stock: 5})
	require.ErrorIs(t, err, ErrCommitInFlight)

	_, _, err = store.BeginCommit("sess")
	require.ErrorIs(t, err, ErrCommitInFlight)

	// A failed commit releases the latch without clearing the cart.
	store.EndCommit("sess", false)
	cart, _ := store.View("sess")
	require.Equal(t, int64(1), cart.TotalItems())
	require.NoError(t, store.AddItem("sess", ProductSnapshot{ID: "p2", Price: 3000, Stock: 5}))
}

func TestApplyVoucherUnknownCode(t *testing.T) {
	repo := newMemoryRepo()
	repo.promotions = []Promotion{{Code: "HEMAT10", Type: PromotionPercent, Value: 1000, Status: "active"}}
	svc := newTestService(repo)

	_, err := svc.ApplyVoucher(context.Background(), "sess", "NOPE")
	require.ErrorIs(t, err, ErrUnknownVoucher)
}

func TestTransactionHistory(t *testing.T) {
	repo := newMemoryRepo()
	repo.addProduct(ProductSnapshot{ID: "p1", Name: "Kopi Susu", Price: 15000, Cost: 6000, Stock: 10})
	svc := newTestService(repo)
	ctx := context.Background()

	// Distinct commit times keep the time-based ids unique.
	base := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	checkouts := 0
	svc.now = func() time.Time {
		checkouts++
		return base.Add(time.Duration(checkouts) * time.Second)
	}

	_, err := svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	first, err := svc.Checkout(ctx, "sess", PaymentCash, "Kasir")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, "sess", PaymentGopay, "Kasir")
	require.NoError(t, err)

	// Newest first, frozen line items intact.
	txns, err := svc.Transactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, second.ID, txns[0].ID)
	require.Equal(t, first.ID, txns[1].ID)
	require.Len(t, txns[0].Items, 1)
	require.Equal(t, "Kopi Susu", txns[0].Items[0].Product.Name)

	got, err := svc.Transaction(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.Total, got.Total)
	require.Equal(t, PaymentCash, got.PaymentMethod)

	_, err = svc.Transaction(ctx, "txn_missing")
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestReceiptContainsStoreAndLines(t *testing.T) {
	repo := newMemoryRepo()
	repo.store = StoreInfo{Name: "Toko Kasira", Address: "Jl. Melati 12", Phone: "0274-555"}
	repo.addProduct(ProductSnapshot{ID: "p1", Name: "Kopi Susu", Price: 15000, Cost: 6000, Stock: 10})
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", "p1")
	require.NoError(t, err)
	txn, err := svc.Checkout(ctx, "sess", PaymentCash, "Kasir")
	require.NoError(t, err)

	receipt, err := svc.Receipt(ctx, txn)
	require.NoError(t, err)
	require.Contains(t, receipt, "Toko Kasira")
	require.Contains(t, receipt, "Kopi Susu")
}
