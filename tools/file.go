package tools

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func FileExist(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true // 文件存在
	}
	// 不存在或权限问题都按不存在处理
	return false
}

// SafeFilename 拒绝可能造成路径穿越的文件名
func SafeFilename(name string) bool {
	if name == "" {
		return false
	}
	return !strings.Contains(name, "..") &&
		!strings.Contains(name, "/") &&
		!strings.Contains(name, `\`)
}

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SetAttachment 设置下载响应头
func SetAttachment(c *gin.Context, displayName, contentType string) {
	escaped := url.QueryEscape(displayName)

	c.Header("Content-Type", contentType)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
}
