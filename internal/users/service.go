package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kasira-pos/kasira-pos/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	if id == "" {
		return Account{}, errors.New("invalid user ID")
	}
	return s.repo.Get(ctx, id)
}

// Create hashes the password and stores the account.
func (s *Service) Create(ctx context.Context, account Account, password string) (Account, error) {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	if account.Email == "" {
		return Account{}, errors.New("email is required")
	}
	if strings.TrimSpace(account.Name) == "" {
		return Account{}, errors.New("name is required")
	}
	if account.Role != auth.RoleAdmin && account.Role != auth.RoleCashier {
		return Account{}, errors.New("role must be admin or cashier")
	}
	if len(password) < 8 {
		return Account{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	return s.repo.Create(ctx, account, string(hash))
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return errors.New("invalid user ID")
	}
	return s.repo.SetActive(ctx, id, active)
}
