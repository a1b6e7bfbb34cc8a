package test

import (
	"fmt"
	"net/http"
	"testing"

	"community-portal/config"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser 创建带会员资料的用户，密码为 password
func CreateUser(t *testing.T, db *gorm.DB, role, password string) *model.User {
	t.Helper()
	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	user := &model.User{
		Name:            "Test " + role,
		Email:           email,
		Password:        tools.PasswordEncrypt(password),
		Role:            role,
		Status:          model.UserStatusActive,
		IsEmailVerified: true,
		Member: &model.Member{
			FirstName:      "Test",
			LastName:       role,
			Email:          email,
			MembershipType: model.MembershipRegular,
			Status:         model.UserStatusActive,
			IsApproved:     true,
			IsActive:       true,
		},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// LoginAs 创建指定角色的用户并直接写入会话，返回会话 cookie
// 需先调用 SetupDB 和 SetupRedis
func LoginAs(t *testing.T, db *gorm.DB, role string) (*model.User, *http.Cookie) {
	t.Helper()
	user := CreateUser(t, db, role, "password123")
	id, err := session.Default.Create(t.Context(), session.Data{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		MemberID: user.MemberID(),
	})
	require.NoError(t, err)
	return user, &http.Cookie{Name: config.Get().Session.CookieName, Value: id}
}
