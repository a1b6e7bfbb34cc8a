package httpclient

import (
	"time"

	"community-portal/internal/global/logger"
	"community-portal/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = New()
}

// New 创建带重试的客户端，只对网络错误和 5xx 重试
func New() *resty.Client {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", logger.AppName).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	// 配置 Sentry 性能追踪（如果 Sentry 已启用）
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(client)
	}
	return client
}
