package gallery

import (
	"community-portal/internal/global/middleware"
	"community-portal/internal/global/permission"

	"github.com/gin-gonic/gin"
)

func (m *ModuleGallery) InitRouter(r *gin.RouterGroup) {
	galleryGroup := r.Group("/gallery")
	{
		galleryGroup.GET("", ListPublicAlbums)
		galleryGroup.GET("/:id", GetPublicAlbum)
	}

	adminGroup := r.Group("/admin/gallery",
		middleware.RequireSession(),
		middleware.RequireCapability(permission.ManageGallery),
	)
	{
		adminGroup.GET("/albums", ListAlbumsAdmin)
		adminGroup.POST("/albums", CreateAlbum)
		adminGroup.GET("/albums/:id", GetAlbum)
		adminGroup.PUT("/albums/:id", UpdateAlbum)
		adminGroup.DELETE("/albums/:id", DeleteAlbum)
		adminGroup.POST("/albums/:id/photos", AddPhoto)
		adminGroup.DELETE("/photos/:id", DeletePhoto)
	}
}
