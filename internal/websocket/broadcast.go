package websocket

import (
	"IOStatDO/internal/pkg/logger"
	"encoding/json"
	"time"
)

// BroadcastIOStat sends a throughput reading to all connected clients
func (r *Registry) BroadcastIOStat(reading interface{}) {
	r.broadcast(ChannelIOStat, reading)
}

func (r *Registry) broadcast(channel string, payload interface{}) {
	handler := r.lookup(channel)
	if handler == nil || handler.ClientCount() == 0 {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		channel:     payload,
		"timestamp": timeNow(),
	})
	if err != nil {
		logger.Error("Failed to marshal metrics for WebSocket broadcast",
			logger.String("channel", channel),
			logger.Err(err))
		return
	}
	handler.Broadcast(data)
}

func timeNow() string {
	return time.Now().Format(time.RFC3339)
}
