package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Host      string `envconfig:"HOST"`
	Port      string `envconfig:"PORT"`
	BaseURL   string `envconfig:"BASE_URL" mapstructure:"base_url"` // 前端站点地址，用于邮件链接和重定向
	Prefix    string `envconfig:"PREFIX"`
	Mode      Mode   `envconfig:"MODE"`
	Storage   Storage
	Mysql     Mysql
	Redis     Redis
	JWT       JWT
	Session   Session
	Log       Log `mapstructure:"Log"`
	Sentry    Sentry
	OTel      OTel
	S3        S3
	Email     Email
	Notify    Notify
	RateLimit RateLimit `mapstructure:"rate_limit" split_words:"true"`
	Seed      Seed
}

type Storage struct {
	Driver     string `envconfig:"DRIVER" mapstructure:"driver"`           // local 或 s3
	Home       string `mapstructure:"home"`                                // 本地存储根目录
	PublicPath string `envconfig:"PUBLIC_PATH" mapstructure:"public_path"` // 对外访问路径前缀
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME" mapstructure:"db_name"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // 秒
}

type Session struct {
	CookieName string `envconfig:"COOKIE_NAME" mapstructure:"cookie_name"`
	MaxAgeDays int    `envconfig:"MAX_AGE_DAYS" mapstructure:"max_age_days"`
	Secure     bool   `envconfig:"SECURE" mapstructure:"secure"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `envconfig:"DSN" mapstructure:"dsn"`
	Environment string        `envconfig:"ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64       `envconfig:"SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"AGENT_PORT" mapstructure:"agent_port"`
}

type Email struct {
	SMTPHost  string `envconfig:"SMTP_HOST" mapstructure:"smtp_host"`
	SMTPPort  int    `envconfig:"SMTP_PORT" mapstructure:"smtp_port"`
	SMTPUser  string `envconfig:"SMTP_USER" mapstructure:"smtp_user"`
	SMTPPass  string `envconfig:"SMTP_PASS" mapstructure:"smtp_pass"`
	FromEmail string `envconfig:"FROM_EMAIL" mapstructure:"from_email"`
}

type Notify struct {
	WebhookURL string `envconfig:"WEBHOOK_URL" mapstructure:"webhook_url"` // 新会员注册时通知管理员
}

// RateLimit 令牌桶参数，rate 为每秒补充的令牌数
type RateLimit struct {
	LoginRate   float64 `mapstructure:"login_rate"`
	LoginBurst  float64 `mapstructure:"login_burst"`
	UploadRate  float64 `mapstructure:"upload_rate"`
	UploadBurst float64 `mapstructure:"upload_burst"`
}

type Seed struct {
	Enable             bool   `envconfig:"ENABLE" mapstructure:"enable"`
	AdminEmail         string `envconfig:"ADMIN_EMAIL" mapstructure:"admin_email"`
	AdminPassword      string `envconfig:"ADMIN_PASSWORD" mapstructure:"admin_password"`
	SampleMemberPasswd string `envconfig:"MEMBER_PASSWORD" mapstructure:"member_password"`
}
