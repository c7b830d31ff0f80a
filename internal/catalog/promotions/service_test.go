package promotions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasira-pos/kasira-pos/internal/catalog/shared"
	internalShared "github.com/kasira-pos/kasira-pos/internal/shared"
)

type fakeRepo struct {
	byID map[string]Promotion
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]Promotion)}
}

func (r *fakeRepo) List(ctx context.Context, filters shared.ListFilters) ([]Promotion, int, error) {
	var out []Promotion
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (Promotion, error) {
	p, ok := r.byID[id]
	if !ok {
		return Promotion{}, internalShared.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) Create(ctx context.Context, p Promotion) (Promotion, error) {
	for _, existing := range r.byID {
		if existing.Code == p.Code {
			return Promotion{}, ErrDuplicateCode
		}
	}
	p.ID = "promo-" + p.Code
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, p Promotion) error {
	if _, ok := r.byID[id]; !ok {
		return internalShared.ErrNotFound
	}
	p.ID = id
	r.byID[id] = p
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return internalShared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreateNormalizesCodeAndStatus(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), Promotion{
		Code:  "  hemat10 ",
		Type:  TypePercent,
		Value: 1000,
	})
	require.NoError(t, err)
	require.Equal(t, "HEMAT10", created.Code)
	require.Equal(t, StatusInactive, created.Status)
}

func TestCreateRejectsInvalidValues(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := []Promotion{
		{Code: "", Type: TypePercent, Value: 1000},
		{Code: "X", Type: TypePercent, Value: 0},
		{Code: "X", Type: TypePercent, Value: 10001},
		{Code: "X", Type: TypeFixed, Value: 0},
		{Code: "X", Type: "bogo", Value: 1000},
		{Code: "X", Type: TypeFixed, Value: 5000, Status: "paused"},
	}
	for _, p := range cases {
		_, err := svc.Create(ctx, p)
		require.Error(t, err, "%+v", p)
	}
}

func TestCreateAcceptsFullPercent(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Promotion{
		Code: "GRATIS", Type: TypePercent, Value: 10000, Status: StatusActive,
	})
	require.NoError(t, err)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Promotion{Code: "HEMAT10", Type: TypeFixed, Value: 5000})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Promotion{Code: "hemat10", Type: TypeFixed, Value: 2000})
	require.ErrorIs(t, err, ErrDuplicateCode)
}

func TestUpdateValidatesAndPropagatesNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	err := svc.Update(ctx, "missing", Promotion{Code: "X", Type: TypeFixed, Value: 100})
	require.ErrorIs(t, err, internalShared.ErrNotFound)

	err = svc.Update(ctx, "missing", Promotion{Code: "X", Type: TypePercent, Value: -5})
	require.EqualError(t, err, "percent value must be between 0 and 100")
}
