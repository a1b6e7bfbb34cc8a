package tracing

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"community-portal/config"

	"github.com/redis/go-redis/v9"
)

// keyspaces 键前缀到业务命名空间，span 中只出现命名空间，不出现会话 ID
var keyspaces = []struct {
	prefix, name string
}{
	{"portal:session:", "session"},
	{"portal:user_sessions:", "user_sessions"},
	{"portal:ratelimit:", "ratelimit"},
}

// RedisSentryHook 会话和限流命令的 span
type RedisSentryHook struct {
	slowThreshold time.Duration
}

func NewRedisSentryHook() *RedisSentryHook {
	return &RedisSentryHook{slowThreshold: millis(config.Get().Sentry.Tracing.RedisSlowThresholdMs)}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		span := startChild(ctx, "db.redis", strings.ToUpper(cmd.Name())+" "+keyspace(cmd))
		if span == nil {
			return next(ctx, cmd)
		}
		span.SetData("db.system", "redis")
		span.SetData("db.operation", cmd.Name())

		start := time.Now()
		err := next(span.Context(), cmd)
		finish(span, time.Since(start), h.slowThreshold, ignoreNil(err))
		return err
	}
}

func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		span := startChild(ctx, "db.redis.pipeline", pipelineDescription(cmds))
		if span == nil {
			return next(ctx, cmds)
		}
		span.SetData("db.system", "redis")
		span.SetData("redis.pipeline_length", len(cmds))

		start := time.Now()
		err := next(span.Context(), cmds)
		finish(span, time.Since(start), h.slowThreshold, ignoreNil(err))
		return err
	}
}

// keyspace EVAL/EVALSHA 的键在脚本和键数量之后
func keyspace(cmd redis.Cmder) string {
	args := cmd.Args()
	idx := 1
	switch strings.ToLower(cmd.Name()) {
	case "eval", "evalsha":
		idx = 3
	}
	if len(args) <= idx {
		return "-"
	}
	key, ok := args[idx].(string)
	if !ok {
		return "-"
	}
	for _, ks := range keyspaces {
		if strings.HasPrefix(key, ks.prefix) {
			return ks.name
		}
	}
	return "other"
}

// pipelineDescription 如 "PIPELINE session,user_sessions"
func pipelineDescription(cmds []redis.Cmder) string {
	seen := map[string]struct{}{}
	var names []string
	for _, cmd := range cmds {
		ks := keyspace(cmd)
		if ks == "-" {
			continue
		}
		if _, ok := seen[ks]; !ok {
			seen[ks] = struct{}{}
			names = append(names, ks)
		}
	}
	if len(names) == 0 {
		return "PIPELINE"
	}
	sort.Strings(names)
	return "PIPELINE " + strings.Join(names, ",")
}

func ignoreNil(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
