package websocket

import (
	"IOStatDO/internal/monitoring/iostat"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the websocket routes
func RegisterWebSocketRoutes(router *gin.Engine, iostatMonitor *iostat.Monitor, middleware ...gin.HandlerFunc) {
	group := router.Group("/ws", middleware...)
	{
		group.GET("/iostat", iostatMonitor.WebSocketHandler)
	}
}
