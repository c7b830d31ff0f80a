package auth

import "time"

// Roles gate the admin surface; cashiers only reach the POS screen.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents an authenticated staff account.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
