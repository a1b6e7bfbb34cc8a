package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envPrefix = "PORTAL"

var cfg = defaultConfig()

// Get 返回全局配置，未调用 Init 时为默认配置
func Get() *Config {
	return cfg
}

// Init 依次加载 .env、config.yaml 和环境变量，后者覆盖前者
func Init() {
	_ = godotenv.Load()

	c := defaultConfig()

	v := viper.New()
	path := os.Getenv(envPrefix + "_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(c); err != nil {
			panic(fmt.Errorf("解析配置文件失败: %w", err))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := envconfig.Process(envPrefix, c); err != nil {
		panic(fmt.Errorf("读取环境变量失败: %w", err))
	}

	if err := c.Validate(); err != nil {
		panic(err)
	}
	cfg = c
}

// Validate 检查 release 模式下必须提供的配置
func (c *Config) Validate() error {
	if c.Mode != ModeDebug && c.Mode != ModeRelease {
		return fmt.Errorf("未知的运行模式: %s", c.Mode)
	}
	if c.Storage.Driver != StorageLocal && c.Storage.Driver != StorageS3 {
		return fmt.Errorf("未知的存储类型: %s", c.Storage.Driver)
	}
	if c.Mode != ModeRelease {
		return nil
	}
	if c.JWT.AccessSecret == "" || c.JWT.AccessSecret == defaultSecret {
		return fmt.Errorf("release 模式下必须配置 JWT.AccessSecret")
	}
	if c.Storage.Driver == StorageS3 && c.S3.Bucket == "" {
		return fmt.Errorf("S3 存储需要配置 bucket")
	}
	return nil
}

const defaultSecret = "community-portal-dev-secret"

func defaultConfig() *Config {
	return &Config{
		Host:    "0.0.0.0",
		Port:    "8080",
		BaseURL: "http://localhost:3000",
		Prefix:  "api",
		Mode:    ModeDebug,
		Storage: Storage{
			Driver:     StorageLocal,
			Home:       "public",
			PublicPath: "/uploads/profiles",
		},
		Mysql: Mysql{
			Host:   "127.0.0.1",
			Port:   "3306",
			DBName: "community_portal",
		},
		Redis: Redis{
			Host: "127.0.0.1",
			Port: "6379",
		},
		JWT: JWT{
			AccessSecret: defaultSecret,
			AccessExpire: 7 * 24 * 3600,
		},
		Session: Session{
			CookieName: "portal_session",
			MaxAgeDays: 30,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		OTel: OTel{
			ServiceName: "community-portal",
		},
		Email: Email{
			SMTPPort: 587,
		},
		RateLimit: RateLimit{
			LoginRate:   0.2,
			LoginBurst:  5,
			UploadRate:  1,
			UploadBurst: 10,
		},
	}
}
