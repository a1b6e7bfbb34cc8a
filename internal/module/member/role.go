package member

import (
	"community-portal/internal/global/database"
	"community-portal/internal/global/permission"
	"community-portal/internal/global/response"
	"community-portal/internal/global/session"
	"community-portal/internal/model"
	"community-portal/tools"

	"github.com/gin-gonic/gin"
)

type UpdateRoleReq struct {
	Role string `json:"role"`
}

// UpdateRole 修改会员关联账号的角色，并吊销该账号已有的会话
func UpdateRole(c *gin.Context) {
	id, ok := tools.ParamUint(c, "id")
	if !ok {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil || !permission.ValidRole(req.Role) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Invalid role specified"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var member model.Member
	err := db.First(&member, id).Error
	if database.IsNotFound(err) {
		response.Fail(c, response.ErrNotFound.WithTips("Member not found"))
		return
	}
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if member.UserID == nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("Member has no user account"))
		return
	}

	if err := db.Model(&model.User{}).Where("id = ?", *member.UserID).Update("role", req.Role).Error; err != nil {
		log.Error("更新角色失败", "error", err, "member_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := session.Default.RevokeUser(c.Request.Context(), *member.UserID); err != nil {
		log.Warn("吊销会话失败", "error", err, "user_id", *member.UserID)
	}

	operator, _ := session.FromContext(c)
	log.Info("更新会员角色", "member_id", id, "user_id", *member.UserID, "role", req.Role, "operator", operator.UserID)
	response.Success(c, gin.H{
		"success": true,
		"message": "Role updated to " + req.Role,
	})
}
