package ping

import (
	"context"
	"net/http"
	"time"

	"community-portal/internal/global/database"
	"community-portal/internal/global/redis"
	"community-portal/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Version 构建时可通过 -ldflags "-X community-portal/internal/module/ping.Version=..." 覆盖
var Version = "1.0.0"

func Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "pong",
		"version": Version,
	})
}

// Health 检查数据库和 Redis 连接，任一失败返回 503
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "ok"}

	if err := pingDatabase(ctx); err != nil {
		log.Warn("数据库健康检查失败", "error", err)
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if redis.RedisClient == nil {
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else if err := redis.RedisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis 健康检查失败", "error", err)
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, checks)
}

func pingDatabase(ctx context.Context) error {
	if database.DB == nil {
		return errDatabaseNotReady
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
