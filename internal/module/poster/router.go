package poster

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModulePoster) InitRouter(r *gin.RouterGroup) {
	r.GET("/posters", ListActivePosters)

	adminGroup := r.Group("/admin/posters",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManagePosters),
	)
	{
		adminGroup.GET("", ListPosters)
		adminGroup.POST("", CreatePoster)
		adminGroup.GET("/:id", GetPoster)
		adminGroup.PUT("/:id", UpdatePoster)
		adminGroup.DELETE("/:id", DeletePoster)
	}
}
