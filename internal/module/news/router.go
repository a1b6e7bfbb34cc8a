package news

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleNews) InitRouter(r *gin.RouterGroup) {
	newsGroup := r.Group("/news")
	{
		newsGroup.GET("", ListPublishedNews)
		newsGroup.GET("/:slug", GetNewsBySlug)
	}

	adminGroup := r.Group("/admin/news",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManageNews),
	)
	{
		adminGroup.GET("", ListNews)
		adminGroup.POST("", CreateNews)
		adminGroup.GET("/:id", GetNews)
		adminGroup.PUT("/:id", UpdateNews)
		adminGroup.PATCH("/:id", SetPublished)
		adminGroup.DELETE("/:id", DeleteNews)
	}
}
