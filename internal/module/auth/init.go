package auth

import (
	"log/slog"

	"community-portal/config"
	"community-portal/internal/global/logger"
	"community-portal/internal/global/ratelimit"
	"community-portal/internal/global/redis"
)

var log *slog.Logger

// loginLimiter 为 nil 时不限流
var loginLimiter *ratelimit.Limiter

type ModuleAuth struct{}

func (a *ModuleAuth) GetName() string {
	return "Auth"
}

func (a *ModuleAuth) Init() {
	log = logger.New("Auth")
	cfg := config.Get().RateLimit
	loginLimiter = ratelimit.New(redis.RedisClient, "portal:ratelimit:login", cfg.LoginRate, cfg.LoginBurst)
}
