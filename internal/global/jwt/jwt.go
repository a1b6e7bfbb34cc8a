package jwt

import (
	"strconv"
	"time"

	"community-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Payload 签发 token 时写入的用户信息
type Payload struct {
	UserID   uint   `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	MemberID *uint  `json:"memberId,omitempty"`
}

type Claims struct {
	Payload
	jwt.RegisteredClaims
}

// CreateToken 使用 HS256 签发 token，有效期取 JWT.AccessExpire
func CreateToken(payload Payload) (string, error) {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(payload.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.AccessExpire) * time.Second)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
}

// ParseToken 校验签名、算法和过期时间，任何失败都返回 false
func ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}
