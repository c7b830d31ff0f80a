package promotions

import (
	"errors"
	"time"
)

// Promotion is a voucher the cashier can apply to a cart. Percent values
// are stored as basis points, fixed values as whole rupiah. Only active
// promotions are offered at checkout.
type Promotion struct {
	ID          string
	Code        string
	Type        string
	Value       int64
	Status      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	TypePercent = "percent"
	TypeFixed   = "fixed"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ErrDuplicateCode reports a voucher code collision.
var ErrDuplicateCode = errors.New("promotion code already exists")
