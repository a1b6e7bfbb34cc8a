package event

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/events")
	{
		eventGroup.GET("", ListPublicEvents)
		eventGroup.GET("/:id", GetPublicEvent)
	}

	adminGroup := r.Group("/admin/events",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManageEvents),
	)
	{
		adminGroup.GET("", ListEvents)
		adminGroup.POST("", CreateEvent)
		adminGroup.GET("/:id", GetEvent)
		adminGroup.PUT("/:id", UpdateEvent)
		adminGroup.DELETE("/:id", DeleteEvent)
	}
}
