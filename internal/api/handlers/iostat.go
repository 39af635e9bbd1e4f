package handlers

import (
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/pkg/config"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errNoBaseline = errors.New("no reading yet: at least two samples are required")

// IOStatHandler serves the throughput readings of a monitor
type IOStatHandler struct {
	config     *config.Config
	monitor    *iostat.Monitor
	enumerator *iostat.Enumerator
}

// NewIOStatHandler creates a new iostat handler
func NewIOStatHandler(cfg *config.Config, monitor *iostat.Monitor) *IOStatHandler {
	return &IOStatHandler{
		config:     cfg,
		monitor:    monitor,
		enumerator: iostat.NewEnumerator(cfg.Monitoring.IOStat.SysPath),
	}
}

// GetLatest returns the most recent reading, or 503 before the first delta
func (h *IOStatHandler) GetLatest(c *gin.Context) {
	if h.monitor == nil {
		HandleErrorWithStatus(c, http.StatusServiceUnavailable, errors.New("iostat monitor is not running"))
		return
	}

	reading, ok := h.monitor.LastReading()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": errNoBaseline.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reading": reading,
		"thresholds": gin.H{
			"warning_bytes":  iostat.WarningThreshold.Bytes(),
			"critical_bytes": iostat.CriticalThreshold.Bytes(),
		},
	})
}

// GetDevices lists the physical block devices included in the aggregate
func (h *IOStatHandler) GetDevices(c *gin.Context) {
	devices, err := h.enumerator.ListPhysicalDevices()
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registry": h.enumerator.BlockDir(),
		"devices":  devices,
		"count":    len(devices),
	})
}
