package pos

import (
	"errors"
	"time"

	"github.com/kasira-pos/kasira-pos/internal/shared"
)

// Boundary DTOs keep the original record shapes: product and promotion money
// travels as decimal strings, committed transaction amounts as numbers.

type productJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	SupplierID string `json:"supplier_id"`
	Cost       string `json:"cost"`
	Price      string `json:"price"`
	Stock      string `json:"stock"`
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type promotionJSON struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type cartItemJSON struct {
	productJSON
	Quantity int64 `json:"quantity"`
}

type cartJSON struct {
	Items      []cartItemJSON `json:"items"`
	Voucher    *promotionJSON `json:"voucher"`
	TotalItems int64          `json:"total_items"`
	Subtotal   string         `json:"subtotal"`
	Discount   string         `json:"discount"`
	Total      string         `json:"total"`
}

type transactionJSON struct {
	ID            string         `json:"id"`
	Items         []cartItemJSON `json:"items"`
	Profit        int64          `json:"profit"`
	CashierName   string         `json:"cashier_name"`
	PaymentMethod string         `json:"payment_method"`
	VoucherCode   *string        `json:"voucher_code"`
	Subtotal      int64          `json:"subtotal"`
	Total         int64          `json:"total"`
	Discount      int64          `json:"discount"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func toProductJSON(p ProductSnapshot) productJSON {
	return productJSON{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		SupplierID: p.SupplierID,
		Cost:       shared.FormatAmount(p.Cost),
		Price:      shared.FormatAmount(p.Price),
		Stock:      shared.FormatAmount(p.Stock),
	}
}

func toPromotionJSON(p Promotion) promotionJSON {
	value := shared.FormatAmount(p.Value)
	if p.Type == PromotionPercent {
		value = shared.FormatPercent(p.Value)
	}
	return promotionJSON{
		ID:          p.ID,
		Code:        p.Code,
		Type:        string(p.Type),
		Value:       value,
		Status:      p.Status,
		Description: p.Description,
	}
}

func toCartItems(lines []CartLine) []cartItemJSON {
	items := make([]cartItemJSON, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartItemJSON{
			productJSON: toProductJSON(line.Product),
			Quantity:    line.Quantity,
		})
	}
	return items
}

func toCartJSON(view CartView) cartJSON {
	out := cartJSON{
		Items:      toCartItems(view.Lines),
		TotalItems: view.TotalItems,
		Subtotal:   shared.FormatAmount(view.Totals.Subtotal),
		Discount:   shared.FormatAmount(view.Totals.Discount),
		Total:      shared.FormatAmount(view.Totals.Total),
	}
	if view.Voucher != nil {
		promo := toPromotionJSON(*view.Voucher)
		out.Voucher = &promo
	}
	return out
}

func toTransactionJSON(txn Transaction) transactionJSON {
	return transactionJSON{
		ID:            txn.ID,
		Items:         toCartItems(txn.Items),
		Profit:        txn.Profit,
		CashierName:   txn.CashierName,
		PaymentMethod: string(txn.PaymentMethod),
		VoucherCode:   txn.VoucherCode,
		Subtotal:      txn.Subtotal,
		Total:         txn.Total,
		Discount:      txn.Discount,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

func isOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
