package dashboard

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleDashboard) InitRouter(r *gin.RouterGroup) {
	r.GET("/admin/dashboard",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.AccessAdminPanel),
		GetStats,
	)
}
