package router

import (
	"IOStatDO/internal/metrics"
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"IOStatDO/internal/websocket"
	"context"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Builder wires the monitor, metrics and router together and manages
// their lifecycle
type Builder struct {
	config  *config.Config
	router  *Router
	monitor *iostat.Monitor
	metrics *metrics.Metrics
}

// NewBuilder creates the metrics registry, starts the iostat monitor and
// prepares the router
func NewBuilder(cfg *config.Config) *Builder {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(cfg.AppName)
	}

	monitor := createIOStatMonitor(cfg, m)

	return &Builder{
		config:  cfg,
		router:  New(cfg, monitor, m),
		monitor: monitor,
		metrics: m,
	}
}

// createIOStatMonitor creates and starts the iostat monitor
func createIOStatMonitor(cfg *config.Config, m *metrics.Metrics) *iostat.Monitor {
	monitor, err := iostat.NewMonitorFromConfig(cfg, m)
	if err != nil {
		logger.Warn("Failed to create IOStat monitor", logger.Err(err))
		return nil
	}

	monitor.BroadcastReadings(websocket.GetRegistry())

	if err := monitor.StartMonitoring(); err != nil {
		logger.Warn("Failed to start IOStat monitor", logger.Err(err))
	} else {
		logger.Debug("Started IOStat monitoring service")
	}
	return monitor
}

// WithAllRoutes adds all routes and initializes the router
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// GetRouter returns the underlying router
func (b *Builder) GetRouter() *Router {
	return b.router
}

// Monitor returns the iostat monitor, nil if it could not be created
func (b *Builder) Monitor() *iostat.Monitor {
	return b.monitor
}

// Start starts the HTTP server
func (b *Builder) Start() {
	if !b.config.Server.Enabled {
		logger.Info("HTTP server disabled in configuration")
		return
	}
	b.router.Start()
}

// Shutdown stops the HTTP server and the monitor
func (b *Builder) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := b.router.Shutdown(ctx); err != nil {
		logger.Warn("HTTP server shutdown failed", logger.Err(err))
	}

	if b.monitor != nil {
		b.monitor.StopMonitoring()
		logger.Info("Stopped IOStat monitoring service")
	}
}
