package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasira-pos/kasira-pos/internal/shared"
)

type stubRepo struct {
	users    map[string]*User
	sessions map[string]string
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*User), sessions: make(map[string]string)}
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *stubRepo) CreateSession(ctx context.Context, id, userID string, expiresAt time.Time, ip, ua string) error {
	r.sessions[id] = userID
	return nil
}

func (r *stubRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *stubRepo) addUser(email, password, role string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.users[email] = &User{
		ID:           "u-" + email,
		Email:        email,
		Name:         "Test User",
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newStubRepo()
	repo.addUser("kasir@kasira.local", "kasir-kasira", RoleCashier, true)
	svc := NewService(repo)

	user, err := svc.Authenticate(context.Background(), "kasir@kasira.local", "kasir-kasira")
	require.NoError(t, err)
	require.Equal(t, RoleCashier, user.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newStubRepo()
	repo.addUser("kasir@kasira.local", "kasir-kasira", RoleCashier, true)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "kasir@kasira.local", "wrong-password")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.Authenticate(context.Background(), "nobody@kasira.local", "whatever")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	repo := newStubRepo()
	repo.addUser("kasir@kasira.local", "kasir-kasira", RoleCashier, false)
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "kasir@kasira.local", "kasir-kasira")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RegisterSession(ctx, "sess-1", "u-1", time.Now().Add(time.Hour), "127.0.0.1", "test"))
	require.Equal(t, "u-1", repo.sessions["sess-1"])

	require.NoError(t, svc.RemoveSession(ctx, "sess-1"))
	require.Empty(t, repo.sessions)
}
