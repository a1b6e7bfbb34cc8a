package tools

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ParamUint 解析路径参数中的正整数 ID
func ParamUint(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetPage 从 page/limit 查询参数计算分页，可变参数依次是 defaultLimit, maxLimit
func GetPage(c *gin.Context, defaults ...int) (page, limit, offset int) {
	defaultLimit, maxLimit := 10, 100
	if len(defaults) > 0 && defaults[0] > 0 {
		defaultLimit = defaults[0]
	}
	if len(defaults) > 1 && defaults[1] > 0 {
		maxLimit = defaults[1]
	}

	page, err := strconv.Atoi(c.Query("page"))
	switch {
	case errors.Is(err, strconv.ErrRange) && page > 0:
		page = math.MaxInt
	case err != nil || page < 1:
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}
	// offset 不能溢出
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	offset = (page - 1) * limit
	return
}

// TotalPages 向上取整
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime 兼容前端 datetime-local 等常见格式，无时区的按本地时间解析
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
