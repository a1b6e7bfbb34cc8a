package v1

import (
	"community-portal/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleV1) InitRouter(r *gin.RouterGroup) {
	v1Group := r.Group("/v1")
	v1Group.POST("/login", Login)

	authed := v1Group.Group("", middleware.BearerAuth())
	{
		authed.GET("/committees", ListCommittees)
		authed.GET("/events", ListEvents)
		authed.GET("/news", ListNews)
		authed.GET("/news/:id", GetNews)
		authed.GET("/gallery/albums", ListAlbums)
		authed.GET("/gallery/albums/:id", GetAlbum)
	}
}
