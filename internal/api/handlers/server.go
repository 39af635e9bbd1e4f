package handlers

import (
	"IOStatDO/internal/monitoring/sysinfo"
	"IOStatDO/internal/pkg/config"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerHandler contains handlers for host-related endpoints
type ServerHandler struct {
	config *config.Config
}

// NewServerHandler creates a new server handler
func NewServerHandler(cfg *config.Config) *ServerHandler {
	return &ServerHandler{
		config: cfg,
	}
}

// GetServerInfo returns general host information
func (h *ServerHandler) GetServerInfo(c *gin.Context) {
	info, err := sysinfo.GetSystemInfo()
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
