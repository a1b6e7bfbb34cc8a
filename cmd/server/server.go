package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"community-portal/config"
	"community-portal/internal/global/database"
	"community-portal/internal/global/httpclient"
	"community-portal/internal/global/logger"
	"community-portal/internal/global/metrics"
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/notify"
	internalOtel "community-portal/internal/global/otel"
	"community-portal/internal/global/pictureBed"
	"community-portal/internal/global/redis"
	"community-portal/internal/global/response"
	"community-portal/internal/global/sentry"
	"community-portal/internal/global/session"
	"community-portal/internal/module"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log *slog.Logger

func Init(ctx context.Context) {
	config.Init()
	log = logger.New("Server")
	cfg := config.Get()

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()
	redis.Init()
	session.Init(redis.RedisClient)
	httpclient.Init()
	notify.Init()
	metrics.Init()

	if cfg.OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(ctx))
	}

	if cfg.Seed.Enable {
		log.Info("写入初始数据")
		tools.PanicOnErr(database.Seed(ctx, database.DB, cfg.Seed))
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

// NewEngine 组装中间件、模块路由、静态文件和 /metrics
func NewEngine() *gin.Engine {
	cfg := config.Get()
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Metrics())
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	api := r.Group("/" + cfg.Prefix)
	for _, m := range module.Modules {
		if log != nil {
			log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		}
		m.InitRouter(api)
	}

	// 本地存储时由本服务直接提供上传的图片
	if storage := pictureBed.FromConfig(cfg); !storage.IsS3() {
		r.Static(storage.BaseURL, storage.SaveDir)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(noRoute(cfg.Prefix))
	return r
}

// noRoute 管理后台路径在未登录时统一返回 401，不暴露路由是否存在
func noRoute(prefix string) gin.HandlerFunc {
	adminPrefix := "/" + strings.Trim(prefix, "/") + "/admin"
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, adminPrefix) && !hasSession(c) {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		response.Fail(c, response.ErrNotFound)
	}
}

func hasSession(c *gin.Context) bool {
	id := session.CookieValue(c)
	if id == "" || session.Default == nil {
		return false
	}
	_, err := session.Default.Get(c.Request.Context(), id)
	return err == nil
}

// Run 启动 HTTP 服务，ctx 取消后优雅关闭
func Run(ctx context.Context) error {
	cfg := config.Get()
	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           NewEngine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP 服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			Close()
			return err
		}
	case <-ctx.Done():
	}

	log.Info("正在关闭 HTTP 服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	Close()
	return err
}

// Close 释放全局资源，可重复调用
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := internalOtel.Shutdown(ctx); err != nil {
		log.Error("关闭 TracerProvider 失败", "error", err)
	}
	sentry.Flush(2 * time.Second)
	if err := redis.Close(); err != nil {
		log.Error("关闭 Redis 失败", "error", err)
	}
	if err := database.Close(); err != nil {
		log.Error("关闭数据库失败", "error", err)
	}
}
