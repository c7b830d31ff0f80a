package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasira-pos/kasira-pos/internal/auth"
	"github.com/kasira-pos/kasira-pos/internal/shared"
)

type fakeRepo struct {
	accounts map[string]Account
	hashes   map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]Account), hashes: make(map[string]string)}
}

func (r *fakeRepo) List(ctx context.Context) ([]Account, error) {
	var out []Account
	for _, a := range r.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, shared.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) Create(ctx context.Context, account Account, passwordHash string) (Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return Account{}, ErrDuplicateEmail
		}
	}
	account.ID = "u-" + account.Email
	r.accounts[account.ID] = account
	r.hashes[account.ID] = passwordHash
	return account, nil
}

func (r *fakeRepo) SetActive(ctx context.Context, id string, active bool) error {
	a, ok := r.accounts[id]
	if !ok {
		return shared.ErrNotFound
	}
	a.IsActive = active
	r.accounts[id] = a
	return nil
}

func TestCreateHashesPasswordAndLowercasesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Account{
		Email:    " Kasir@Kasira.Local ",
		Name:     "Kasir Dua",
		Role:     auth.RoleCashier,
		IsActive: true,
	}, "rahasia-kasir")
	require.NoError(t, err)
	require.Equal(t, "kasir@kasira.local", created.Email)

	hash := repo.hashes[created.ID]
	require.NotEqual(t, "rahasia-kasir", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("rahasia-kasir")))
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		account  Account
		password string
	}{
		{Account{Email: "", Name: "X", Role: auth.RoleCashier}, "long-enough"},
		{Account{Email: "a@b.c", Name: " ", Role: auth.RoleCashier}, "long-enough"},
		{Account{Email: "a@b.c", Name: "X", Role: "owner"}, "long-enough"},
		{Account{Email: "a@b.c", Name: "X", Role: auth.RoleAdmin}, "short"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.account, tc.password)
		require.Error(t, err, "%+v", tc.account)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	account := Account{Email: "a@b.c", Name: "X", Role: auth.RoleAdmin, IsActive: true}
	_, err := svc.Create(ctx, account, "long-enough")
	require.NoError(t, err)

	_, err = svc.Create(ctx, account, "long-enough")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSetActive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Account{
		Email: "a@b.c", Name: "X", Role: auth.RoleCashier, IsActive: true,
	}, "long-enough")
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, created.ID, false))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	require.ErrorIs(t, svc.SetActive(ctx, "missing", true), shared.ErrNotFound)
}
