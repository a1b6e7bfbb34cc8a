package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"community-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, getLogLevel("warn"))
	require.Equal(t, slog.LevelError, getLogLevel("error"))
	require.Equal(t, slog.LevelInfo, getLogLevel(""))
	require.Equal(t, slog.LevelInfo, getLogLevel("verbose"))
}

func TestReleaseHandlerWritesRedactedJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Mode: config.ModeRelease}
	cfg.Log.Level = "info"

	l := slog.New(newHandler(cfg, &buf))
	l.Debug("hidden")
	l.Info("登录失败", "username", "alice", "password", "hunter2", "Token", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "登录失败", entry["msg"])
	require.Equal(t, "alice", entry["username"])
	require.Equal(t, "[REDACTED]", entry["password"])
	require.Equal(t, "[REDACTED]", entry["Token"])
	require.NotContains(t, buf.String(), "hunter2")
	require.NotContains(t, buf.String(), "hidden")
}

func TestDebugHandlerIsText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Mode: config.ModeDebug}
	cfg.Log.Level = "debug"

	slog.New(newHandler(cfg, &buf)).Debug("启动", "port", 8080)
	require.Contains(t, buf.String(), "level=DEBUG")
	require.Contains(t, buf.String(), "port=8080")
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/members", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"
	c.Request.Header.Set("X-Real-IP", "203.0.113.9")

	WithContext(base, c).Info("anonymous")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "203.0.113.9", entry["x_real_ip"])
	require.NotContains(t, entry, "user_id")

	buf.Reset()
	c.Set(UserIDKey, uint(7))
	c.Set(UserRoleKey, "admin")
	WithContext(base, c).Info("signed in")
	entry = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.EqualValues(t, 7, entry["user_id"])
	require.Equal(t, "admin", entry["role"])
}
