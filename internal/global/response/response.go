package response

import (
	"errors"
	"fmt"
	"net/http"

	"community-portal/config"
	"community-portal/internal/global/logger"
	"community-portal/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidRequest     = newError(http.StatusBadRequest, "Invalid request")
	ErrUnauthorized       = newError(http.StatusUnauthorized, "Unauthorized")
	ErrInvalidCredentials = newError(http.StatusUnauthorized, "Invalid credentials")
	ErrForbidden          = newError(http.StatusForbidden, "Forbidden")
	ErrNotFound           = newError(http.StatusNotFound, "Not found")
	ErrAlreadyExists      = newError(http.StatusConflict, "Already exists")
	ErrTooManyRequests    = newError(http.StatusTooManyRequests, "Too many requests")
	ErrServerInternal     = newError(http.StatusInternalServerError, "Internal server error")
	ErrDatabase           = newError(http.StatusInternalServerError, "Internal server error")
)

// Fail 以 {error: message} 形式返回错误并中断后续处理
// 非 *Error 类型一律视为 500，5xx 错误会上报 Sentry 且不向前端暴露细节
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)

	if e.Code >= http.StatusInternalServerError {
		logger.WithContext(logger.New("Response"), c).Error("服务器内部错误",
			"error", e,
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
		sentry.CaptureException(c, e)
	}

	body := gin.H{"error": e.Message}
	if config.Get().Mode == config.ModeDebug && e.Origin != "" {
		body["origin"] = e.Origin
	}
	c.AbortWithStatusJSON(int(e.Code), body)
}

// Success 返回 200，不带数据时返回 {success: true}
func Success(c *gin.Context, data ...any) {
	if len(data) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, data[0])
}

// Created 返回 201 和新建的资源
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Deleted 删除成功的统一响应
func Deleted(c *gin.Context, resource string) {
	c.JSON(http.StatusOK, gin.H{"message": resource + " deleted successfully"})
}

// Recovery 捕获 handler 中的 panic 并返回 500
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", r)
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
