package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"community-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ContextKey RequireSession 中间件写入 *Data 的键
const ContextKey = "session"

const (
	keyPrefix     = "portal:session:"
	userKeyPrefix = "portal:user_sessions:"
)

var ErrNotFound = errors.New("session not found")

// Data 服务端保存的登录状态
type Data struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	MemberID  *uint     `json:"memberId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store 基于 Redis 的会话存储，会话 ID 为随机 UUID
type Store struct {
	rdb *goredis.Client
	ttl time.Duration
}

// Default 由 Init 创建
var Default *Store

func NewStore(rdb *goredis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func Init(rdb *goredis.Client) {
	Default = NewStore(rdb, MaxAge())
}

// MaxAge 会话有效期，默认 30 天
func MaxAge() time.Duration {
	days := config.Get().Session.MaxAgeDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	id := uuid.NewString()
	data.CreatedAt = time.Now()
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	ukey := userKey(data.UserID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+id, raw, s.ttl)
		pipe.SAdd(ctx, ukey, id)
		pipe.Expire(ctx, ukey, s.ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Data, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

// RevokeUser 删除某个用户的全部会话，角色或密码变更后调用
func (s *Store) RevokeUser(ctx context.Context, userID uint) error {
	key := userKey(userID)
	ids, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, keyPrefix+id)
	}
	keys = append(keys, key)
	return s.rdb.Del(ctx, keys...).Err()
}

func userKey(userID uint) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, userID)
}

// SetCookie 写入 HttpOnly 会话 cookie
func SetCookie(c *gin.Context, id string) {
	cfg := config.Get().Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, id, int(MaxAge().Seconds()), "/", "", cfg.Secure, true)
}

func ClearCookie(c *gin.Context) {
	cfg := config.Get().Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}

// CookieValue 读取请求中的会话 ID
func CookieValue(c *gin.Context) string {
	id, err := c.Cookie(config.Get().Session.CookieName)
	if err != nil {
		return ""
	}
	return id
}

// FromContext 返回当前请求的登录信息，需在 RequireSession 之后调用
func FromContext(c *gin.Context) (*Data, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	data, ok := v.(*Data)
	return data, ok
}
