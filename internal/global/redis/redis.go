package redis

import (
	"context"
	"time"

	"community-portal/config"
	"community-portal/internal/global/sentry/tracing"
	"community-portal/tools"

	goredis "github.com/redis/go-redis/v9"
)

// RedisClient 会话和限流共用的客户端
var RedisClient *goredis.Client

func Init() {
	cfg := config.Get().Redis
	RedisClient = goredis.NewClient(&goredis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if tracing.IsEnabled() {
		RedisClient.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(RedisClient.Ping(ctx).Err())
}

// Close 关闭客户端，未初始化时忽略
func Close() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
