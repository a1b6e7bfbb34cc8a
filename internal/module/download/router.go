package download

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleDownload) InitRouter(r *gin.RouterGroup) {
	r.GET("/downloads", ListPublicDownloads)

	adminGroup := r.Group("/admin/downloads",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManageDownloads),
	)
	{
		adminGroup.GET("", ListDownloads)
		adminGroup.POST("", CreateDownload)
		adminGroup.PUT("/:id", UpdateDownload)
		adminGroup.DELETE("/:id", DeleteDownload)
	}
}
