package suppliers

import "time"

// Supplier is a goods vendor referenced by products.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
