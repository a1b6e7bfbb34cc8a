package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestKeyspace(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		cmd  redis.Cmder
		want string
	}{
		{redis.NewStringCmd(ctx, "get", "portal:session:5f0c6d1e-aaaa"), "session"},
		{redis.NewIntCmd(ctx, "sadd", "portal:user_sessions:7", "id"), "user_sessions"},
		{redis.NewCmd(ctx, "evalsha", "abc123", 1, "portal:ratelimit:login:10.0.0.1", 0.2, 5), "ratelimit"},
		{redis.NewStringCmd(ctx, "get", "cache:x"), "other"},
		{redis.NewStatusCmd(ctx, "ping"), "-"},
	} {
		require.Equal(t, tc.want, keyspace(tc.cmd), tc.cmd.Name())
	}

	desc := pipelineDescription([]redis.Cmder{
		redis.NewStatusCmd(ctx, "set", "portal:session:abc", "{}"),
		redis.NewIntCmd(ctx, "sadd", "portal:user_sessions:1", "abc"),
		redis.NewBoolCmd(ctx, "expire", "portal:user_sessions:1", 60),
	})
	require.Equal(t, "PIPELINE session,user_sessions", desc)
	require.Equal(t, "PIPELINE", pipelineDescription(nil))
}

func TestDescriptions(t *testing.T) {
	require.Equal(t, "SELECT members", statementDescription("select", "members"))
	require.Equal(t, "DELETE unknown", statementDescription("delete", ""))

	require.Equal(t, "https://hooks.slack.com", endpoint("https://hooks.slack.com/services/T000/B000/secret?x=1"))
	require.Equal(t, "unknown", endpoint("not a url"))
}

func TestSpansWithoutParent(t *testing.T) {
	require.Nil(t, startChild(context.Background(), "db.sql.select", "SELECT users"))

	span := sentry.StartSpan(context.Background(), "test")
	finish(span, time.Millisecond, time.Second, nil)
	require.Equal(t, sentry.SampledFalse, span.Sampled)
	require.Equal(t, sentry.SpanStatusOK, span.Status)
}

func TestHooksUnderRequestSpan(t *testing.T) {
	parent := sentry.StartSpan(context.Background(), "http.server")
	defer parent.Finish()
	ctx := parent.Context()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	rdb.AddHook(&RedisSentryHook{})

	require.NoError(t, rdb.Set(ctx, "portal:session:abc", "{}", time.Minute).Err())
	require.ErrorIs(t, rdb.Get(ctx, "portal:session:missing").Err(), redis.Nil)
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, "portal:user_sessions:1", "abc")
		return nil
	})
	require.NoError(t, err)

	type row struct {
		ID   uint
		Name string
	}
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Use(&GormTracingPlugin{}))
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.WithContext(ctx).Create(&row{Name: "a"}).Error)
	require.ErrorIs(t, db.WithContext(ctx).First(&row{}, 99).Error, gorm.ErrRecordNotFound)
}
