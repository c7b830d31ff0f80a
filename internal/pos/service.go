package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListProducts(ctx context.Context) ([]ProductSnapshot, error)
	GetProduct(ctx context.Context, id string) (ProductSnapshot, error)
	ListCategories(ctx context.Context) ([]CategoryRef, error)
	ListActivePromotions(ctx context.Context) ([]Promotion, error)
	GetStoreInfo(ctx context.Context) (StoreInfo, error)
	ListTransactions(ctx context.Context, limit int) ([]Transaction, error)
	GetTransaction(ctx context.Context, id string) (Transaction, error)
}

// IntegrationHandler receives a committed sale after the database
// transaction has landed. Implementations run best-effort side effects
// (report cache invalidation, background task enqueue) and must not assume
// they can fail the sale: it is already committed.
type IntegrationHandler interface {
	HandleSaleCommitted(ctx context.Context, txn Transaction)
}

// CartView is the priced state of one session's cart.
type CartView struct {
	Lines      []CartLine
	Voucher    *Promotion
	TotalItems int64
	Totals     Totals
}

// Service coordinates the cashier screen: catalog snapshot, cart sessions,
// voucher selection and the checkout commit.
type Service struct {
	repo        RepositoryPort
	carts       *CartStore
	integration IntegrationHandler
	now         func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, integration IntegrationHandler) *Service {
	return &Service{
		repo:        repo,
		carts:       NewCartStore(),
		integration: integration,
		now:         time.Now,
	}
}

// Snapshot loads products, categories and active promotions in parallel,
// once per screen entry.
func (s *Service) Snapshot(ctx context.Context) (CatalogSnapshot, error) {
	var snap CatalogSnapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		cats, err := s.repo.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		promos, err := s.repo.ListActivePromotions(ctx)
		if err != nil {
			return fmt.Errorf("load promotions: %w", err)
		}
		snap.Promotions = promos
		return nil
	})

	if err := g.Wait(); err != nil {
		return CatalogSnapshot{}, err
	}
	return snap, nil
}

// AddItem puts one unit of the product into the session's cart. Out-of-stock
// and at-stock-cap adds are silent no-ops; the returned view reflects
// whatever state the cart ended up in.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (CartView, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if err := s.carts.AddItem(sessionID, product); err != nil {
		return CartView{}, err
	}
	return s.ViewCart(sessionID), nil
}

// ChangeQuantity applies a bounded delta to a cart line.
func (s *Service) ChangeQuantity(sessionID, productID string, delta int64) (CartView, error) {
	if err := s.carts.ChangeQuantity(sessionID, productID, delta); err != nil {
		return CartView{}, err
	}
	return s.ViewCart(sessionID), nil
}

// RemoveItem deletes a cart line unconditionally.
func (s *Service) RemoveItem(sessionID, productID string) (CartView, error) {
	if err := s.carts.RemoveItem(sessionID, productID); err != nil {
		return CartView{}, err
	}
	return s.ViewCart(sessionID), nil
}

// ApplyVoucher selects an active promotion by code for the session.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (CartView, error) {
	promos, err := s.repo.ListActivePromotions(ctx)
	if err != nil {
		return CartView{}, err
	}
	code = strings.TrimSpace(code)
	for _, promo := range promos {
		if promo.Code == code {
			if err := s.carts.SetVoucher(sessionID, promo); err != nil {
				return CartView{}, err
			}
			return s.ViewCart(sessionID), nil
		}
	}
	return CartView{}, fmt.Errorf("%w: %s", ErrUnknownVoucher, code)
}

// ClearVoucher deselects the session's promotion.
func (s *Service) ClearVoucher(sessionID string) (CartView, error) {
	if err := s.carts.ClearVoucher(sessionID); err != nil {
		return CartView{}, err
	}
	return s.ViewCart(sessionID), nil
}

// ViewCart prices the current cart state.
func (s *Service) ViewCart(sessionID string) CartView {
	cart, voucher := s.carts.View(sessionID)
	return CartView{
		Lines:      cart.Lines(),
		Voucher:    voucher,
		TotalItems: cart.TotalItems(),
		Totals:     ComputeTotals(cart.Subtotal(), voucher),
	}
}

// DropCart discards the session's cart, e.g. when the session ends.
func (s *Service) DropCart(sessionID string) {
	s.carts.Drop(sessionID)
}

// Checkout commits the session's cart as one sale. The transaction record,
// its items and every stock decrement land in a single database transaction;
// if any product lacks stock the whole commit rolls back and the in-memory
// cart stays untouched for a retry.
func (s *Service) Checkout(ctx context.Context, sessionID string, method PaymentMethod, cashierName string) (Transaction, error) {
	if !method.Valid() {
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidPayment, method)
	}
	if cashierName == "" {
		cashierName = "Cashier"
	}

	cart, voucher, err := s.carts.BeginCommit(sessionID)
	if err != nil {
		return Transaction{}, err
	}

	totals := ComputeTotals(cart.Subtotal(), voucher)
	now := s.now().UTC()

	var voucherCode *string
	if voucher != nil {
		voucherCode = &voucher.Code
	}

	txn := Transaction{
		ID:            fmt.Sprintf("txn_%d", now.UnixMilli()),
		Items:         cart.Lines(),
		CashierName:   cashierName,
		PaymentMethod: method,
		VoucherCode:   voucherCode,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	txn.Profit = txn.Total - txn.TotalCost()

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo TxRepository) error {
		if err := repo.InsertTransaction(ctx, txn); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		if err := repo.InsertTransactionItems(ctx, txn.ID, txn.Items); err != nil {
			return fmt.Errorf("insert transaction items: %w", err)
		}
		for _, item := range txn.Items {
			if err := repo.DecrementStock(ctx, item.Product.ID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	s.carts.EndCommit(sessionID, err == nil)
	if err != nil {
		return Transaction{}, err
	}

	if s.integration != nil {
		s.integration.HandleSaleCommitted(ctx, txn)
	}
	return txn, nil
}

// Transactions lists recent committed sales, newest first.
func (s *Service) Transactions(ctx context.Context, limit int) ([]Transaction, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListTransactions(ctx, limit)
}

// Transaction loads one committed sale with its frozen line items.
func (s *Service) Transaction(ctx context.Context, id string) (Transaction, error) {
	if id == "" {
		return Transaction{}, ErrTransactionNotFound
	}
	return s.repo.GetTransaction(ctx, id)
}

// Receipt renders the printable receipt for a committed transaction.
func (s *Service) Receipt(ctx context.Context, txn Transaction) (string, error) {
	info, err := s.repo.GetStoreInfo(ctx)
	if err != nil {
		return "", err
	}
	return RenderReceipt(info, txn), nil
}
