package database

import (
	"net"
	"time"

	"community-portal/config"
	"community-portal/internal/global/sentry/tracing"
	"community-portal/internal/model"
	"community-portal/tools"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表，被依赖的表在前
var autoMigrateModels = []any{
	&model.User{},
	&model.Member{},
	&model.Committee{},
	&model.CommitteeMember{},
	&model.Event{},
	&model.GalleryAlbum{},
	&model.Photo{},
	&model.NewsArticle{},
	&model.Poster{},
	&model.Download{},
	&model.MatrimonialProfile{},
	// 在这里添加其他模型
}

// DSN 使用驱动自带的 FormatDSN，避免密码中的特殊字符破坏连接串
func DSN(c config.Mysql) string {
	dsnCfg := gomysql.NewConfig()
	dsnCfg.User = c.Username
	dsnCfg.Passwd = c.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(c.Host, c.Port)
	dsnCfg.DBName = c.DBName
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.Local
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}
	return dsnCfg.FormatDSN()
}

// GormConfig 根据运行模式返回 gorm 配置，测试中的 sqlite 连接也使用它
func GormConfig() *gorm.Config {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}
	return gormConfig
}

func Init() {
	db, err := gorm.Open(mysql.Open(DSN(config.Get().Mysql)), GormConfig())
	tools.PanicOnErr(err)

	sqlDB, err := db.DB()
	tools.PanicOnErr(err)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin()))
	}
	DB = db

	// 使用模型列表进行自动迁移
	tools.PanicOnErr(Migrate(DB))
}

// Migrate 对所有模型执行自动迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}

// Close 关闭底层连接池
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
