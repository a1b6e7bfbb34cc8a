package auth

import (
	"context"
	"strings"
	"sync"

	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/model"
	"community-portal/tools"
)

// dummyHash 用户不存在时也做一次 bcrypt 比较
var dummyHash = sync.OnceValue(func() string {
	return tools.PasswordEncrypt("community-portal-dummy-password")
})

// NormalizeEmail 登录和注册统一使用小写、去空格的邮箱
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate 校验邮箱和密码，邮箱不存在、密码错误、账号停用都返回 ErrInvalidCredentials
func Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	var user model.User
	err := database.DB.WithContext(ctx).Preload("Member").Where("email = ?", email).First(&user).Error
	switch {
	case database.IsNotFound(err):
		tools.PasswordCompare(password, dummyHash())
		log.Warn("登录失败：用户不存在", "email", email)
		return nil, response.ErrInvalidCredentials
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", email)
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	if !tools.PasswordCompare(password, user.Password) {
		log.Warn("登录失败：密码错误", "user_id", user.ID)
		return nil, response.ErrInvalidCredentials
	}
	if user.Status != model.UserStatusActive {
		log.Warn("登录失败：账号已停用", "user_id", user.ID)
		return nil, response.ErrInvalidCredentials
	}
	return &user, nil
}
