package committee

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCommittee) InitRouter(r *gin.RouterGroup) {
	committeeGroup := r.Group("/committees")
	{
		committeeGroup.GET("", ListActiveCommittees)
		committeeGroup.GET("/carousel", ListCarousel)
		committeeGroup.GET("/:id", GetPublicCommittee)
	}

	adminGroup := r.Group("/admin/committees",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManageCommittees),
	)
	{
		adminGroup.GET("", ListCommittees)
		adminGroup.POST("", CreateCommittee)
		adminGroup.GET("/:id", GetCommittee)
		adminGroup.PUT("/:id", UpdateCommittee)
		adminGroup.DELETE("/:id", DeleteCommittee)
		adminGroup.POST("/:id/members", AddMember)
		adminGroup.DELETE("/:id/members/:cmId", RemoveMember)
	}
}
