package pos

import (
	"errors"
	"time"
)

// ProductSnapshot is the immutable-for-the-session view of a product as the
// cashier screen loaded it. Prices and stock are frozen into cart lines so a
// later catalog edit never changes a sale in progress.
type ProductSnapshot struct {
	ID         string
	Name       string
	CategoryID string
	SupplierID string
	Price      int64
	Cost       int64
	Stock      int64
}

// CartLine pairs a product snapshot with a quantity.
type CartLine struct {
	Product  ProductSnapshot
	Quantity int64
}

// CategoryRef is the slim category view shown on the cashier screen filter.
type CategoryRef struct {
	ID   string
	Name string
}

// PromotionType enumerates supported voucher kinds.
type PromotionType string

const (
	// PromotionPercent discounts a percentage of the subtotal.
	PromotionPercent PromotionType = "percent"
	// PromotionFixed discounts a fixed amount.
	PromotionFixed PromotionType = "fixed"
)

// Promotion is a voucher selectable at checkout. Value holds basis points
// for percent promotions and whole rupiah for fixed ones.
type Promotion struct {
	ID          string
	Code        string
	Type        PromotionType
	Value       int64
	Status      string
	Description string
}

// PaymentMethod enumerates accepted tenders.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentGopay    PaymentMethod = "gopay"
	PaymentOvo      PaymentMethod = "ovo"
	PaymentDana     PaymentMethod = "dana"
	PaymentTransfer PaymentMethod = "transfer"
)

// Valid reports whether the payment method is one of the accepted tenders.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentGopay, PaymentOvo, PaymentDana, PaymentTransfer:
		return true
	}
	return false
}

// Transaction is an immutable record of one completed sale.
type Transaction struct {
	ID            string
	Items         []CartLine
	CashierName   string
	PaymentMethod PaymentMethod
	VoucherCode   *string
	Subtotal      int64
	Discount      int64
	Total         int64
	Profit        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalCost sums cost x quantity over all items.
func (t Transaction) TotalCost() int64 {
	var cost int64
	for _, item := range t.Items {
		cost += item.Product.Cost * item.Quantity
	}
	return cost
}

// StoreInfo heads printed receipts.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// CatalogSnapshot is everything the cashier screen needs at entry.
type CatalogSnapshot struct {
	Products   []ProductSnapshot
	Categories []CategoryRef
	Promotions []Promotion
}

var (
	// ErrEmptyCart rejects checkout before any persistence attempt.
	ErrEmptyCart = errors.New("pos: cart is empty")
	// ErrCommitInFlight rejects cart mutations while a checkout is running.
	ErrCommitInFlight = errors.New("pos: checkout in progress")
	// ErrInsufficientStock fails the whole commit when any product lacks stock.
	ErrInsufficientStock = errors.New("pos: insufficient stock")
	// ErrUnknownVoucher indicates the code matches no active promotion.
	ErrUnknownVoucher = errors.New("pos: unknown voucher code")
	// ErrInvalidPayment indicates an unsupported payment method.
	ErrInvalidPayment = errors.New("pos: invalid payment method")
	// ErrProductNotFound indicates the product id matches no catalog row.
	ErrProductNotFound = errors.New("pos: product not found")
	// ErrTransactionNotFound indicates the id matches no committed sale.
	ErrTransactionNotFound = errors.New("pos: transaction not found")
)
