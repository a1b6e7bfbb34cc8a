package tracing

import (
	"errors"
	"strings"
	"time"

	"community-portal/config"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey  = "portal:sentry_span"
	gormStartKey = "portal:sentry_start"
)

// GormTracingPlugin 每条语句一个 span，描述为 "<操作> <表名>"
type GormTracingPlugin struct {
	slowThreshold time.Duration
	dbName        string
}

func NewGormTracingPlugin() *GormTracingPlugin {
	cfg := config.Get()
	return &GormTracingPlugin{
		slowThreshold: millis(cfg.Sentry.Tracing.DBSlowThresholdMs),
		dbName:        cfg.Mysql.DBName,
	}
}

func (p *GormTracingPlugin) Name() string {
	return "portal:sentry_tracing"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("portal:trace_before_create", p.before("insert")),
		cb.Create().After("gorm:create").Register("portal:trace_after_create", p.after),
		cb.Query().Before("gorm:query").Register("portal:trace_before_query", p.before("select")),
		cb.Query().After("gorm:query").Register("portal:trace_after_query", p.after),
		cb.Update().Before("gorm:update").Register("portal:trace_before_update", p.before("update")),
		cb.Update().After("gorm:update").Register("portal:trace_after_update", p.after),
		cb.Delete().Before("gorm:delete").Register("portal:trace_before_delete", p.before("delete")),
		cb.Delete().After("gorm:delete").Register("portal:trace_after_delete", p.after),
		cb.Row().Before("gorm:row").Register("portal:trace_before_row", p.before("row")),
		cb.Row().After("gorm:row").Register("portal:trace_after_row", p.after),
		cb.Raw().Before("gorm:raw").Register("portal:trace_before_raw", p.before("raw")),
		cb.Raw().After("gorm:raw").Register("portal:trace_after_raw", p.after),
	)
}

func (p *GormTracingPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil {
			return
		}
		span := startChild(db.Statement.Context, "db.sql."+operation, statementDescription(operation, db.Statement.Table))
		if span == nil {
			return
		}
		span.SetData("db.system", db.Dialector.Name())
		if p.dbName != "" {
			span.SetData("db.name", p.dbName)
		}
		db.InstanceSet(gormStartKey, time.Now())
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	if db.Statement == nil {
		return
	}
	v, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := v.(*sentry.Span)
	if !ok || span == nil {
		return
	}
	var elapsed time.Duration
	if start, ok := db.InstanceGet(gormStartKey); ok {
		if t, ok := start.(time.Time); ok {
			elapsed = time.Since(t)
		}
	}

	span.SetData("db.rows_affected", db.RowsAffected)
	err := db.Error
	// 查不到记录由 handler 转成 404
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	finish(span, elapsed, p.slowThreshold, err)
}

// statementDescription 不带 SQL 参数，会员资料和密码哈希不会进入 Sentry
func statementDescription(operation, table string) string {
	if table == "" {
		table = "unknown"
	}
	return strings.ToUpper(operation) + " " + table
}
