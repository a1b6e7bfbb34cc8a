package member

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"
	"community-portal/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMember) InitRouter(r *gin.RouterGroup) {
	// 公开会员名录，只展示已审核且有效的会员
	memberGroup := r.Group("/members")
	{
		memberGroup.GET("", ListPublicMembers)
		memberGroup.GET("/filters", ListFilters)
		memberGroup.GET("/lifetime", ListByMembership(model.MembershipLifetime))
		memberGroup.GET("/patron", ListByMembership(model.MembershipPatron))
	}

	adminGroup := r.Group("/admin/members", middleware.RequireSession())
	{
		view := middleware.RequireCapability(permission.ViewMembers)
		manage := middleware.RequireCapability(permission.ManageMembers)

		adminGroup.GET("", view, ListMembers)
		adminGroup.GET("/export", view, ExportMembers)
		adminGroup.GET("/:id", view, GetMember)
		adminGroup.POST("", manage, CreateMember)
		adminGroup.PATCH("/:id", manage, UpdateMember)
		adminGroup.DELETE("/:id", manage, DeleteMember)
		adminGroup.PATCH("/:id/role", middleware.RequireCapability(permission.ManageUsers), UpdateRole)
	}
}
