package signal

import (
	"IOStatDO/internal/api/router"
	"IOStatDO/internal/app"
	"IOStatDO/internal/pkg/logger"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc adds a function to run before the process exits
func RegisterCleanupFunc(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, fn)
}

// RunCleanup runs the registered cleanup functions in reverse order
func RunCleanup() {
	cleanupMu.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	cleanupMu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		funcs[i]()
	}
}

// HandleSignals blocks until SIGINT or SIGTERM, then shuts everything down
// and exits
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			logger.Info("Received termination signal, shutting down...",
				logger.String("signal", sig.String()))

			builder.Shutdown()
			RunCleanup()
			application.Shutdown()
			os.Exit(0)
		case syscall.SIGHUP:
			// Configuration is only read at startup
			logger.Info("Received SIGHUP, ignoring; restart the service to apply configuration changes")
		}
	}
}
