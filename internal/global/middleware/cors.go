package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"community-portal/config"

	"github.com/gin-gonic/gin"
)

// Cors 只允许前端站点跨域，并允许携带会话 cookie
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowOrigin 只放行 BaseURL，debug 模式额外放行本机前端开发服务器
func allowOrigin(origin string) bool {
	cfg := config.Get()
	if strings.EqualFold(strings.TrimRight(origin, "/"), strings.TrimRight(cfg.BaseURL, "/")) {
		return true
	}
	if cfg.Mode != config.ModeDebug {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
