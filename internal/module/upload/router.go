package upload

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleUpload) InitRouter(r *gin.RouterGroup) {
	uploadGroup := r.Group("/upload")
	{
		// 注册页面需要匿名上传头像，按 IP 限流
		uploadGroup.POST("/image", middleware.RateLimit(uploadLimiter), UploadImage)

		adminGroup := uploadGroup.Group("",
			middleware.RequireSession(),
			middleware.RequireCapability(permission.AccessAdminPanel),
		)
		adminGroup.DELETE("/image", DeleteImage)
		adminGroup.POST("/presign", PresignUpload)
	}
}
