package test

import (
	"testing"

	"community-portal/internal/global/session"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// SetupRedis 启动 miniredis 并初始化默认会话存储
func SetupRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	prev := session.Default
	session.Init(rdb)
	t.Cleanup(func() { session.Default = prev })
	require.NoError(t, rdb.Ping(t.Context()).Err())
	return mr, rdb
}
