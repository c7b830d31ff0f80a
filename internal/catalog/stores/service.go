package stores

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Store, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Save(ctx context.Context, store Store) (Store, error) {
	if strings.TrimSpace(store.Name) == "" {
		return Store{}, errors.New("store name is required")
	}
	return s.repo.Save(ctx, store)
}
