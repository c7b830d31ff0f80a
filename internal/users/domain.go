package users

import "time"

// Account is the admin view of a staff login.
type Account struct {
	ID        string
	Email     string
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
