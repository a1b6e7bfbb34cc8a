package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"community-portal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func TestStoreLifecycle(t *testing.T) {
	store, mr := newStore(t)
	ctx := t.Context()
	memberID := uint(9)

	id, err := store.Create(ctx, Data{UserID: 1, Email: "a@example.com", Role: "Member", MemberID: &memberID})
	require.NoError(t, err)

	data, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 1, data.UserID)
	require.Equal(t, &memberID, data.MemberID)
	require.False(t, data.CreatedAt.IsZero())

	_, err = store.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	// 过期后视为不存在
	id, err = store.Create(ctx, Data{UserID: 1})
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeUser(t *testing.T) {
	store, _ := newStore(t)
	ctx := t.Context()

	a, err := store.Create(ctx, Data{UserID: 1})
	require.NoError(t, err)
	b, err := store.Create(ctx, Data{UserID: 1})
	require.NoError(t, err)
	other, err := store.Create(ctx, Data{UserID: 2})
	require.NoError(t, err)

	require.NoError(t, store.RevokeUser(ctx, 1))
	for _, id := range []string{a, b} {
		_, err = store.Get(ctx, id)
		require.ErrorIs(t, err, ErrNotFound)
	}
	_, err = store.Get(ctx, other)
	require.NoError(t, err)
}

func TestCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SetCookie(c, "abc")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, config.Get().Session.CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	require.Equal(t, int(MaxAge().Seconds()), cookies[0].MaxAge)

	c.Request.AddCookie(&http.Cookie{Name: config.Get().Session.CookieName, Value: "abc"})
	require.Equal(t, "abc", CookieValue(c))
}
