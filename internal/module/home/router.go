package home

import "github.com/gin-gonic/gin"

func (m *ModuleHome) InitRouter(r *gin.RouterGroup) {
	r.GET("/home", GetHome)
}
