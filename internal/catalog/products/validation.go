package products

import (
	"errors"
	"strings"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.Price < 0 || p.Cost < 0 {
		return errors.New("price and cost must be non-negative")
	}
	if p.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return nil
}
