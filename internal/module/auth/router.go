package auth

import (
	"community-portal/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleAuth) InitRouter(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimit(loginLimiter), Login)
		authGroup.POST("/logout", Logout)
		authGroup.POST("/register", middleware.RateLimit(loginLimiter), Register)
		authGroup.POST("/verify-email", VerifyEmail)
		authGroup.GET("/verify-email", VerifyEmailRedirect)
		authGroup.GET("/session", middleware.RequireSession(), CurrentSession)
	}

	userGroup := r.Group("/user", middleware.RequireSession())
	{
		userGroup.GET("/profile", Profile)
		userGroup.PUT("/password", ChangePassword)
	}
}
