package report

import "context"

// RepositoryPort abstracts sales reads for the service.
type RepositoryPort interface {
	ListSales(ctx context.Context) ([]Sale, error)
}

// SalesReport bundles the aggregated view returned to callers.
type SalesReport struct {
	Period      Period        `json:"period"`
	Rows        []Row         `json:"rows"`
	Summary     Summary       `json:"summary"`
	TopProducts []ProductRank `json:"top_products"`
}

// Service serves cached sales reports.
type Service struct {
	repo  RepositoryPort
	cache *Cache
}

// NewService builds Service.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Sales aggregates all committed transactions for the given period,
// reading through the versioned Redis cache.
func (s *Service) Sales(ctx context.Context, period Period) (SalesReport, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		sales, err := s.repo.ListSales(ctx)
		if err != nil {
			return nil, err
		}
		rows := Aggregate(sales, period)
		return SalesReport{
			Period:      period,
			Rows:        rows,
			Summary:     Summarize(rows),
			TopProducts: TopProducts(sales),
		}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return SalesReport{}, err
		}
		return value.(SalesReport), nil
	}

	key, err := s.cache.BuildKey(ctx, keySales(period))
	if err != nil {
		return SalesReport{}, err
	}
	var out SalesReport
	if err := s.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return SalesReport{}, err
	}
	return out, nil
}

// Invalidate drops cached reports after new sales land.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
