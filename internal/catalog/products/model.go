package products

import "time"

// Product is a catalog item. Cost, Price and Stock are whole-rupiah
// integers internally; the decimal-string form exists only at the API
// boundary.
type Product struct {
	ID         string
	Name       string
	CategoryID string
	SupplierID string
	Cost       int64
	Price      int64
	Stock      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
