package suppliers

import (
	"context"
	"errors"
	"strings"

	"github.com/kasira-pos/kasira-pos/internal/catalog/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Supplier, error) {
	if id == "" {
		return Supplier{}, errors.New("invalid supplier ID")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return Supplier{}, errors.New("supplier name is required")
	}
	return s.repo.Create(ctx, supplier)
}

func (s *Service) Update(ctx context.Context, id string, supplier Supplier) error {
	if id == "" {
		return errors.New("invalid supplier ID")
	}
	if strings.TrimSpace(supplier.Name) == "" {
		return errors.New("supplier name is required")
	}
	return s.repo.Update(ctx, id, supplier)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid supplier ID")
	}
	return s.repo.Delete(ctx, id)
}
