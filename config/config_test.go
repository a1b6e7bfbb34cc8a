package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	c := defaultConfig()
	require.NoError(t, c.Validate())

	c.Mode = "staging"
	require.Error(t, c.Validate())

	c = defaultConfig()
	c.Storage.Driver = "ftp"
	require.Error(t, c.Validate())

	// release 模式必须替换默认密钥
	c = defaultConfig()
	c.Mode = ModeRelease
	require.Error(t, c.Validate())
	c.JWT.AccessSecret = "prod-secret"
	require.NoError(t, c.Validate())

	c.Storage.Driver = StorageS3
	require.Error(t, c.Validate())
	c.S3.Bucket = "portal"
	require.NoError(t, c.Validate())
}

func TestInitLayers(t *testing.T) {
	t.Cleanup(func() { cfg = defaultConfig() })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8081"
jwt:
  access_secret: from-file
  access_expire: 60
session:
  cookie_name: sid
rate_limit:
  login_burst: 3
`), 0o644))
	t.Setenv("PORTAL_CONFIG", path)
	t.Setenv("PORTAL_PORT", "9090")
	t.Setenv("PORTAL_SESSION_COOKIE_NAME", "portal_sid")

	Init()
	c := Get()
	require.Equal(t, "9090", c.Port)
	require.Equal(t, "from-file", c.JWT.AccessSecret)
	require.EqualValues(t, 60, c.JWT.AccessExpire)
	require.Equal(t, "portal_sid", c.Session.CookieName)
	require.EqualValues(t, 3, c.RateLimit.LoginBurst)
	// 未配置的字段保留默认值
	require.EqualValues(t, 30, c.Session.MaxAgeDays)
	require.Equal(t, StorageLocal, c.Storage.Driver)
}

func TestInitRejectsInvalid(t *testing.T) {
	t.Cleanup(func() { cfg = defaultConfig() })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: staging\n"), 0o644))
	t.Setenv("PORTAL_CONFIG", path)

	require.Panics(t, Init)
}
