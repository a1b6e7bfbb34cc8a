package pictureBed

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize 单张图片上限 5MB
const MaxImageSize = 5 << 20

var (
	ErrTooLarge    = errors.New("File size too large. Maximum size is 5MB.")
	ErrInvalidType = errors.New("Invalid file type. Only JPEG, PNG, and WebP are allowed.")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AllowedType 声明的 MIME 类型是否允许上传
func AllowedType(contentType string) bool {
	_, ok := allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

// ValidateImage 同时校验声明类型和文件头，返回读取过的头部以便继续写入
func ValidateImage(declared string, size int64, r io.Reader) ([]byte, error) {
	if size > MaxImageSize {
		return nil, ErrTooLarge
	}
	if !AllowedType(declared) {
		return nil, ErrInvalidType
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if !AllowedType(http.DetectContentType(head)) {
		return nil, ErrInvalidType
	}
	return head, nil
}

// GenerateFilename 生成 profile_<毫秒时间戳>_<32位随机hex><扩展名>
func GenerateFilename(originalName, contentType string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || !knownExt(ext) {
		ext = allowedTypes[strings.ToLower(contentType)]
	}
	return fmt.Sprintf("profile_%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext), nil
}

func knownExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}
