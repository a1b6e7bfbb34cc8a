package matrimonial

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMatrimonial) InitRouter(r *gin.RouterGroup) {
	matrimonialGroup := r.Group("/matrimonial", middleware.RequireSession())
	{
		matrimonialGroup.GET("", ListApproved)
		matrimonialGroup.GET("/profile", GetOwnProfile)
		matrimonialGroup.POST("/profile", SaveOwnProfile)
	}

	adminGroup := r.Group("/admin/matrimonial",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ApproveMatrimonial),
	)
	{
		adminGroup.GET("", ListProfiles)
		adminGroup.PATCH("/:id/approve", ApproveProfile)
		adminGroup.DELETE("/:id", DeleteProfile)
	}
}
