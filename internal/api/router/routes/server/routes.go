package server

import (
	"IOStatDO/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the host information routes
func RegisterRoutes(engine *gin.Engine, serverHandler *handlers.ServerHandler, middleware ...gin.HandlerFunc) {
	serverGroup := engine.Group("/api/server", middleware...)
	{
		serverGroup.GET("/info", serverHandler.GetServerInfo)
	}
}
