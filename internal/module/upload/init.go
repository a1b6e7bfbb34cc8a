package upload

import (
	"context"
	"log/slog"

	"community-portal/config"
	"community-portal/internal/global/logger"
	"community-portal/internal/global/pictureBed"
	"community-portal/internal/global/ratelimit"
	"community-portal/internal/global/redis"
)

var log *slog.Logger

var (
	// storage 由 Init 按存储配置创建
	storage       *pictureBed.PictureBed
	uploadLimiter *ratelimit.Limiter
)

type ModuleUpload struct{}

func (m *ModuleUpload) GetName() string {
	return "Upload"
}

func (m *ModuleUpload) Init() {
	log = logger.New("Upload")
	cfg := config.Get()
	storage = pictureBed.FromConfig(cfg)
	if storage.IsS3() {
		if err := storage.InitS3(context.Background()); err != nil {
			log.Error("初始化 S3 客户端失败", "error", err)
		}
	}
	uploadLimiter = ratelimit.New(redis.RedisClient, "portal:ratelimit:upload", cfg.RateLimit.UploadRate, cfg.RateLimit.UploadBurst)
	log.Info("图片存储已配置", "driver", storage.Driver, "base_url", storage.BaseURL)
}
