package middleware

import (
	"errors"
	"strings"

	"community-portal/internal/global/jwt"
	"community-portal/internal/global/logger"
	"community-portal/internal/global/permission"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"

	"github.com/gin-gonic/gin"
)

// UserRoleKey 当前用户角色在 gin.Context 中的键
const UserRoleKey = logger.UserRoleKey

// RequireSession 校验会话 cookie，任何方法未登录都返回 401
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.CookieValue(c)
		if id == "" || session.Default == nil {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		data, err := session.Default.Get(c.Request.Context(), id)
		if errors.Is(err, session.ErrNotFound) {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		if err != nil {
			response.Fail(c, response.ErrServerInternal.WithOrigin(err))
			return
		}
		c.Set(session.ContextKey, data)
		c.Set(logger.UserIDKey, data.UserID)
		c.Set(UserRoleKey, data.Role)
		c.Next()
	}
}

// RequireCapability 需放在 RequireSession 之后，角色缺少能力时返回 403
func RequireCapability(capability permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := session.FromContext(c)
		if !ok {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		if !permission.Allow(data.Role, capability) {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Next()
	}
}

// BearerAuth v1 接口的 token 校验，缺失、格式错误、过期、签名错误都返回同样的 401
func BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		c.Set(jwt.PayloadKey, claims)
		c.Set(logger.UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}
