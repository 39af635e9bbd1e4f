package router

import (
	"IOStatDO/internal/api/handlers"
	"IOStatDO/internal/api/middleware"
	"IOStatDO/internal/api/router/routes/auth"
	iostatRoutes "IOStatDO/internal/api/router/routes/iostat"
	"IOStatDO/internal/api/router/routes/server"
	"IOStatDO/internal/api/router/routes/websocket"
	"IOStatDO/internal/metrics"
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config        *config.Config
	engine        *gin.Engine
	server        *http.Server
	serverHandler *handlers.ServerHandler
	iostatHandler *handlers.IOStatHandler
	monitor       *iostat.Monitor
	metrics       *metrics.Metrics
}

// New creates a new router instance. monitor and m may be nil.
func New(cfg *config.Config, monitor *iostat.Monitor, m *metrics.Metrics) *Router {
	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	return &Router{
		config: cfg,
		engine: engine,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
		serverHandler: handlers.NewServerHandler(cfg),
		iostatHandler: handlers.NewIOStatHandler(cfg, monitor),
		monitor:       monitor,
		metrics:       m,
	}
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	r.engine.Use(gin.Recovery())
	r.engine.Use(LoggerMiddleware())

	if r.config.API.CORS.Enabled {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     r.config.API.CORS.AllowedOrigins,
			AllowMethods:     r.config.API.CORS.AllowedMethods,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.registerAPIRoutes()
	r.registerWebSocketRoutes()
	r.registerRootAPIEndpoint()
	r.registerMetricsEndpoint()

	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

// protected returns the middleware chain for authenticated routes
func (r *Router) protected() []gin.HandlerFunc {
	if !r.config.API.Auth.Enabled {
		return nil
	}
	return []gin.HandlerFunc{middleware.JWTAuthMiddleware(r.config.API.Auth.JWTSecret)}
}

func (r *Router) registerAPIRoutes() {
	if r.config.API.Auth.Enabled {
		auth.RegisterRoutes(r.engine, r.config)
	}
	server.RegisterRoutes(r.engine, r.serverHandler, r.protected()...)
	iostatRoutes.RegisterRoutes(r.engine, r.iostatHandler, r.protected()...)
}

func (r *Router) registerWebSocketRoutes() {
	websocket.RegisterWebSocketRoutes(r.engine, r.monitor, r.protected()...)
}

func (r *Router) registerMetricsEndpoint() {
	if !r.config.Metrics.Enabled || r.metrics == nil {
		return
	}
	r.engine.GET(r.config.Metrics.Path, gin.WrapH(r.metrics.Handler()))
}

// registerRootAPIEndpoint provides simple liveness endpoints
func (r *Router) registerRootAPIEndpoint() {
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"app":     r.config.AppName,
			"version": "1.0",
		})
	})

	r.engine.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if r.monitor == nil || !r.monitor.IsRunning() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
		})
	})
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// LoggerMiddleware creates a middleware for logging HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("Upgrade") == "websocket" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}

// Start starts the HTTP server and blocks until it stops
func (r *Router) Start() {
	logger.Info("Starting HTTP server", logger.String("address", r.server.Addr))

	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start HTTP server", logger.Err(err))
	}
}

// Shutdown gracefully stops the HTTP server
func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
