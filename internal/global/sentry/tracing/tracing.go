// Package tracing 把 MySQL、Redis 和 webhook 调用挂到 sentrygin 创建的请求 span 下
package tracing

import (
	"context"
	"time"

	"community-portal/config"

	"github.com/getsentry/sentry-go"
)

// IsEnabled 配置了 Sentry DSN 时才注册追踪
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// startChild 请求之外（启动、seed）没有父 span，返回 nil
func startChild(ctx context.Context, operation, description string) *sentry.Span {
	if ctx == nil {
		return nil
	}
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// finish 耗时低于阈值的 span 不采样，threshold 为 0 时全部保留
func finish(span *sentry.Span, elapsed, threshold time.Duration, err error) {
	if threshold > 0 && elapsed < threshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
