package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "kasira_session", "test-secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	sess.SetIdentity(Identity{UserID: "u-1", Name: "Kasir Satu", Role: "cashier"})

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, req, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "kasira_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	// A follow-up request carrying the cookie sees the stored state.
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, next)
	require.NoError(t, err)
	require.Equal(t, "u-1", loaded.User())
	require.Equal(t, Identity{UserID: "u-1", Name: "Kasir Satu", Role: "cashier"}, loaded.Identity())
}

func TestSessionDestroyClearsCookieAndStore(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sess.SetUser("u-1")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, req, sess))
	cookie := rec.Result().Cookies()[0]

	sm.Destroy(sess)
	rec = httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, req, sess))
	cleared := rec.Result().Cookies()[0]
	require.Equal(t, -1, cleared.MaxAge)

	// The old cookie no longer resolves to a logged-in session.
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	loaded, err := sm.Load(ctx, next)
	require.NoError(t, err)
	require.Empty(t, loaded.User())
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "kasira_session", Value: "stale-id"})

	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "stale-id", sess.ID)
	require.Empty(t, sess.User())
}

func TestSessionFlash(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)

	sess.AddFlash(FlashMessage{Kind: "success", Message: "tersimpan"})

	msg := sess.PopFlash()
	require.NotNil(t, msg)
	require.Equal(t, "tersimpan", msg.Message)
	require.Nil(t, sess.PopFlash())
}
