package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"community-portal/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const AppName = "community-portal"

// 鉴权中间件写入 gin.Context 的键
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// redactedKeys 这些字段的值不会写入日志
var redactedKeys = map[string]struct{}{
	"password":      {},
	"old_password":  {},
	"new_password":  {},
	"token":         {},
	"session_id":    {},
	"authorization": {},
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

// fanout 把同一条记录交给多个 handler，单个 handler 出错不影响其余
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// newHandler debug 输出文本到 console；release 输出 JSON，配置了文件路径时按 lumberjack 轮转
// 配置 Sentry DSN 后 Warn 以上同时上报
func newHandler(cfg *config.Config, console io.Writer) slog.Handler {
	release := cfg.Mode == config.ModeRelease
	opts := &slog.HandlerOptions{
		AddSource:   release,
		Level:       getLogLevel(cfg.Log.Level),
		ReplaceAttr: redact,
	}

	var base slog.Handler
	switch {
	case release && cfg.Log.FilePath != "":
		base = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}, opts)
	case release:
		base = slog.NewJSONHandler(console, opts)
	default:
		base = slog.NewTextHandler(console, opts)
	}

	if cfg.Sentry.Dsn == "" {
		return base
	}
	return fanout{base, sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
		AddSource:  release,
	}.NewSentryHandler(context.Background())}
}

// Get 全局 Logger，首次调用时按当前配置创建
func Get() *slog.Logger {
	once.Do(func() {
		cfg := config.Get()
		instance = slog.New(newHandler(cfg, os.Stdout)).With(
			"app_name", AppName,
			"env", string(cfg.Mode),
		)
	})
	return instance
}

// New 带 module 字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// RequestContext *gin.Context 满足该接口
type RequestContext interface {
	ClientIP() string
	GetHeader(string) string
	GetUint(string) uint
	GetString(string) string
}

// WithContext 附加 client_ip 和登录用户，代理头存在时一并记录
func WithContext(base *slog.Logger, c RequestContext) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())

	if uid := c.GetUint(UserIDKey); uid != 0 {
		l = l.With("user_id", uid, "role", c.GetString(UserRoleKey))
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		l = l.With("x_real_ip", realIP)
	}
	return l
}

func getLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
