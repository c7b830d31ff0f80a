package promotions

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Promotion, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id string) (Promotion, error) {
	if id == "" {
		return Promotion{}, errors.New("invalid promotion ID")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, promotion Promotion) (Promotion, error) {
	promotion = normalize(promotion)
	if err := s.validate(promotion); err != nil {
		return Promotion{}, err
	}
	return s.repo.Create(ctx, promotion)
}

func (s *Service) Update(ctx context.Context, id string, promotion Promotion) error {
	if id == "" {
		return errors.New("invalid promotion ID")
	}
	promotion = normalize(promotion)
	if err := s.validate(promotion); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, promotion)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invalid promotion ID")
	}
	return s.repo.Delete(ctx, id)
}

func normalize(p Promotion) Promotion {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.Status == "" {
		p.Status = StatusInactive
	}
	return p
}

func (s *Service) validate(p Promotion) error {
	if p.Code == "" {
		return errors.New("promotion code is required")
	}
	switch p.Type {
	case TypePercent:
		// Basis points; 100% is the ceiling.
		if p.Value <= 0 || p.Value > 10000 {
			return errors.New("percent value must be between 0 and 100")
		}
	case TypeFixed:
		if p.Value <= 0 {
			return errors.New("fixed value must be positive")
		}
	default:
		return errors.New("promotion type must be percent or fixed")
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return errors.New("promotion status must be active or inactive")
	}
	return nil
}
