package ping

import (
	"net/http"
	"testing"

	"community-portal/internal/global/redis"
	"community-portal/test"

	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	m := &ModulePing{}
	m.Init()
	r := test.NewRouter(m)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/ping"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"pong","version":"`+Version+`"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	test.SetupDB(t)
	mr, rdb := test.SetupRedis(t)
	prev := redis.RedisClient
	redis.RedisClient = rdb
	t.Cleanup(func() { redis.RedisClient = prev })

	m := &ModulePing{}
	m.Init()
	r := test.NewRouter(m)

	w := test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/health"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"database":"ok","redis":"ok"}`, w.Body.String())

	mr.Close()
	w = test.DoRequest(t, r, test.Request{Method: http.MethodGet, Path: "/api/health"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.JSONEq(t, `{"database":"ok","redis":"unavailable"}`, w.Body.String())
}
