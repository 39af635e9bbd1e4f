package startup

import (
	"IOStatDO/internal/api/router"
	"IOStatDO/internal/app"
)

// StartServer starts the monitor and the HTTP server in the background
func StartServer(application *app.Application) *router.Builder {
	builder := router.NewBuilder(application.GetConfig()).
		WithAllRoutes()

	go builder.Start()

	return builder
}
