package http

import (
	"github.com/gin-gonic/gin"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, secureCookies bool) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, secureCookies)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
	}

	// Protected API routes
	api := router.Group("/api")
	{
		api.GET("/me", RequireIdentity(authService), handlers.Me)
		api.GET("/status", OptionalIdentity(authService), handlers.Status)
	}

	return router
}
