package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-portal/config"
	"community-portal/internal/global/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Router 与 module.Module 的路由部分一致，避免 test 包反向依赖业务模块
type Router interface {
	InitRouter(r *gin.RouterGroup)
}

func init() {
	gin.SetMode(gin.TestMode)
}

// NewRouter 按生产环境的前缀挂载模块路由
func NewRouter(routers ...Router) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	api := r.Group("/" + config.Get().Prefix)
	for _, m := range routers {
		m.InitRouter(api)
	}
	return r
}

// Request 描述一次测试请求，Body 为 nil 时不发送请求体
type Request struct {
	Method  string
	Path    string
	Body    any
	Cookies []*http.Cookie
	Header  map[string]string
}

// DoRequest 执行请求并返回 recorder，Body 为 []byte 或 io.Reader 时原样发送，其余编码为 JSON
func DoRequest(t *testing.T, r http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(b)
	case io.Reader:
		body = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	if _, isReader := req.Body.(io.Reader); req.Body != nil && !isReader {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	for _, c := range req.Cookies {
		httpReq.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)
	return w
}

// Decode 把响应体解码到 T
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ErrorMessage 返回 {error: ...} 响应中的提示
func ErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return Decode[map[string]any](t, w)["error"].(string)
}
