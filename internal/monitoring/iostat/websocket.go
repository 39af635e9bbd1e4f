package iostat

import (
	"IOStatDO/internal/pkg/logger"
	"IOStatDO/internal/websocket"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebSocketHandler streams readings to the connecting client
func (m *Monitor) WebSocketHandler(c *gin.Context) {
	if m == nil {
		logger.Error("IOStat monitor is nil in WebSocketHandler")
		c.String(http.StatusInternalServerError, "Internal server error: iostat monitor not initialized")
		return
	}

	handler := websocket.GetRegistry().Handler(websocket.ChannelIOStat)

	websocket.LogWebSocketConnection(c.ClientIP(), c.Request.URL.Path, c.GetString("username"))

	handler.ServeHTTP(c.Writer, c.Request)
}

// BroadcastReadings publishes every reading on the iostat WebSocket channel
func (m *Monitor) BroadcastReadings(registry *websocket.Registry) {
	m.AddListener(func(r Reading) {
		registry.BroadcastIOStat(r)
	})
}
