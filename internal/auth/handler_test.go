package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/kasira-pos/kasira-pos/internal/shared"
)

type dropRecorder struct {
	dropped []string
}

func (d *dropRecorder) DropCart(sessionID string) {
	d.dropped = append(d.dropped, sessionID)
}

func newHandlerFixture(t *testing.T) (*Handler, *stubRepo, *shared.SessionManager, *dropRecorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newStubRepo()
	sm := shared.NewSessionManager(client, "kasira_session", "test-secret", time.Hour, false)
	drops := &dropRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(repo), sm, drops)
	return h, repo, sm, drops
}

func withSession(r *http.Request, sess *shared.Session) *http.Request {
	return r.WithContext(shared.ContextWithSession(r.Context(), sess))
}

func TestLoginSetsSessionAndReturnsUser(t *testing.T) {
	h, repo, sm, _ := newHandlerFixture(t)
	repo.addUser("kasir@kasira.local", "kasir-kasira", RoleCashier, true)

	body := `{"email":"kasir@kasira.local","password":"kasir-kasira"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	req = withSession(req, sess)

	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got userJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "kasir@kasira.local", got.Email)
	require.Equal(t, RoleCashier, got.Role)

	require.Equal(t, "u-kasir@kasira.local", sess.User())
	require.Equal(t, RoleCashier, sess.Identity().Role)
	require.Contains(t, repo.sessions, sess.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	h, repo, sm, _ := newHandlerFixture(t)
	repo.addUser("kasir@kasira.local", "kasir-kasira", RoleCashier, true)

	body := `{"email":"kasir@kasira.local","password":"not-the-one"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	req = withSession(req, sess)

	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, sess.User())
}

func TestLoginValidatesBody(t *testing.T) {
	h, _, _, _ := newHandlerFixture(t)

	body := `{"email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))

	rec := httptest.NewRecorder()
	h.handleLogin(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutDropsCartAndSession(t *testing.T) {
	h, repo, sm, drops := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	sess.SetUser("u-1")
	repo.sessions[sess.ID] = "u-1"
	req = withSession(req, sess)

	rec := httptest.NewRecorder()
	h.handleLogout(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{sess.ID}, drops.dropped)
	require.NotContains(t, repo.sessions, sess.ID)
}

func TestShowCurrentUserRequiresLogin(t *testing.T) {
	h, _, sm, _ := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	sess, err := sm.Load(req.Context(), req)
	require.NoError(t, err)
	req = withSession(req, sess)

	rec := httptest.NewRecorder()
	h.showCurrentUser(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	sess.SetIdentity(shared.Identity{UserID: "u-1", Name: "Kasir Satu", Role: RoleCashier})
	rec = httptest.NewRecorder()
	h.showCurrentUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got userJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Kasir Satu", got.Name)
}
