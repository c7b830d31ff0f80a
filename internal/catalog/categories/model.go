package categories

import "time"

// Category groups products on the cashier screen and in reports.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
