package middleware_test

import (
	"net/http"
	"testing"

	"community-portal/config"
	"community-portal/internal/global/jwt"
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"
	"community-portal/internal/global/ratelimit"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Cors())
	r.GET("/x", ok)

	origin := func(o string) string {
		w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Header: map[string]string{"Origin": o}})
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header().Get("Access-Control-Allow-Origin")
	}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodOptions, Path: "/x", Header: map[string]string{"Origin": "http://localhost:5173"}})
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	// debug 模式也不放行任意来源
	require.Empty(t, origin("http://evil.test"))
	require.Empty(t, origin("http://localhost.evil.test"))
	require.Equal(t, "http://127.0.0.1:3000", origin("http://127.0.0.1:3000"))

	cfg := config.Get()
	prev := cfg.Mode
	cfg.Mode = config.ModeRelease
	t.Cleanup(func() { cfg.Mode = prev })

	require.Empty(t, origin("http://evil.test"))
	require.Empty(t, origin("http://localhost:5173"))
	require.Equal(t, cfg.BaseURL+"/", origin(cfg.BaseURL+"/"))
}

func TestRateLimit(t *testing.T) {
	_, rdb := test.SetupRedis(t)
	r := gin.New()
	r.GET("/x", middleware.RateLimit(ratelimit.New(rdb, "test:ratelimit", 0.001, 2)), ok)

	for range 2 {
		w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1000", w.Header().Get("Retry-After"))
	require.Equal(t, "Too many requests, please try again later", test.ErrorMessage(t, w))
}

func TestRateLimitRedisDown(t *testing.T) {
	mr, rdb := test.SetupRedis(t)
	mr.Close()
	r := gin.New()
	r.GET("/x", middleware.RateLimit(ratelimit.New(rdb, "test:ratelimit", 1, 1)), ok)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionAndCapability(t *testing.T) {
	test.SetupRedis(t)
	r := gin.New()
	r.GET("/x", middleware.RequireSession(), middleware.RequireCapability(permission.ManageMembers), ok)

	cookie := func(role string) *http.Cookie {
		id, err := session.Default.Create(t.Context(), session.Data{UserID: 1, Role: role})
		require.NoError(t, err)
		return &http.Cookie{Name: config.Get().Session.CookieName, Value: id}
	}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Cookies: []*http.Cookie{{Name: config.Get().Session.CookieName, Value: "bogus"}}})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Cookies: []*http.Cookie{cookie(model.RoleCommitteeAdmin)}})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Cookies: []*http.Cookie{cookie(model.RoleSuperAdmin)}})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBearerAuth(t *testing.T) {
	r := gin.New()
	r.GET("/x", middleware.BearerAuth(), func(c *gin.Context) {
		claims, ok := jwt.GetUserPayload(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})

	token, err := jwt.CreateToken(jwt.Payload{UserID: 5, Role: model.RoleMember})
	require.NoError(t, err)

	for _, header := range []string{"", "Token " + token, "Bearer", "Bearer not.a.token"} {
		w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Header: map[string]string{"Authorization": header}})
		require.Equal(t, http.StatusUnauthorized, w.Code, header)
		require.Equal(t, "Unauthorized", test.ErrorMessage(t, w))
	}

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/x", Header: map[string]string{"Authorization": "Bearer " + token}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"userId": float64(5)}, test.Decode[map[string]any](t, w))
}
