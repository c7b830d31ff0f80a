package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	sales []Sale
	calls int
}

func (r *stubRepo) ListSales(ctx context.Context) ([]Sale, error) {
	r.calls++
	return r.sales, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestSalesReadsThroughCache(t *testing.T) {
	repo := &stubRepo{sales: []Sale{
		{PostedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Total: 30000, Profit: 18000},
	}}
	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	first, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	require.Equal(t, PeriodDaily, first.Period)
	require.Equal(t, int64(30000), first.Summary.Revenue)
	require.Equal(t, 1, repo.calls)

	// The second read is served from cache without touching the repository.
	second, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.calls)
}

func TestSalesPeriodsCacheIndependently(t *testing.T) {
	repo := &stubRepo{sales: []Sale{
		{PostedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Total: 1000},
	}}
	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	_, err = svc.Sales(ctx, PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := &stubRepo{sales: []Sale{
		{PostedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Total: 1000},
	}}
	svc := NewService(repo, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)

	repo.sales = append(repo.sales, Sale{
		PostedAt: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), Total: 500,
	})
	require.NoError(t, svc.Invalidate(ctx))

	out, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	require.Equal(t, int64(1500), out.Summary.Revenue)
	require.Equal(t, 2, repo.calls)
}

func TestSalesWithoutCacheHitsRepositoryEveryTime(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	_, err = svc.Sales(ctx, PeriodDaily)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestCacheVersionStartsAtOneAndBumps(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	ver, err := cache.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), ver)

	require.NoError(t, cache.Bump(ctx))

	ver, err = cache.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), ver)
}
