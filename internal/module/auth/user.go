package auth

import (
	"community-portal/internal/global/database"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

// ProfileUser 会员资料中附带的账号信息
type ProfileUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type ProfileResp struct {
	model.Member
	User ProfileUser `json:"user"`
}

// Profile 当前用户的会员资料
func Profile(c *gin.Context) {
	data, _ := session.FromContext(c)

	var user model.User
	err := database.DB.WithContext(c.Request.Context()).Preload("Member").First(&user, data.UserID).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("User not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if user.Member == nil {
		response.Fail(c, response.ErrNotFound.WithTips("Member profile not found"))
		return
	}

	response.Success(c, ProfileResp{
		Member: *user.Member,
		User: ProfileUser{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
			Role:  user.Role,
		},
	})
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword 修改密码后吊销该用户的全部会话，需要重新登录
func ChangePassword(c *gin.Context) {
	data, _ := session.FromContext(c)

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips(tools.BindErrorMessage(err)))
		return
	}

	var user model.User
	if err := database.DB.WithContext(c.Request.Context()).First(&user, data.UserID).Error; err != nil {
		if database.IsNotFound(err) {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		response.Fail(c, response.ErrInvalidCredentials.WithTips("Current password is incorrect"))
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Model(&user).
		Update("password", tools.PasswordEncrypt(req.NewPassword)).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := session.Default.RevokeUser(c.Request.Context(), user.ID); err != nil {
		log.Warn("吊销会话失败", "error", err, "user_id", user.ID)
	}
	session.ClearCookie(c)

	log.Info("用户修改密码", "user_id", user.ID)
	response.Success(c, gin.H{"message": "Password updated successfully"})
}
