package categories

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	if id == "" {
		return Category{}, errors.New("invalid category ID")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return Category{}, errors.New("category name is required")
	}
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, id string, category Category) error {
	if id == "" {
		return errors.New("invalid category ID")
	}
	if strings.TrimSpace(category.Name) == "" {
		return errors.New("category name is required")
	}
	return s.repo.Update(ctx, id, category)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid category ID")
	}
	return s.repo.Delete(ctx, id)
}
