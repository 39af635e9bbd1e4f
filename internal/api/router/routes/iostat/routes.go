package iostat

import (
	"IOStatDO/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the throughput routes
func RegisterRoutes(engine *gin.Engine, iostatHandler *handlers.IOStatHandler, middleware ...gin.HandlerFunc) {
	group := engine.Group("/api/iostat", middleware...)
	{
		group.GET("", iostatHandler.GetLatest)
		group.GET("/devices", iostatHandler.GetDevices)
	}
}
