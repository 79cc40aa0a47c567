// Package http serves the watcher's probes, run status and metrics.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/prometheus"
	"github.com/solhycool/visualizations/internal/interfaces/http/handlers"
	"github.com/solhycool/visualizations/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies.
type RouterConfig struct {
	HealthHandler *handlers.HealthHandler
	StatusHandler *handlers.StatusHandler

	Logger           logging.Logger
	Logging          middleware.LoggingConfig
	MetricsCollector prometheus.MetricsCollector

	// Mode is the gin mode: "debug", "release" or "test".
	Mode string
}

// NewRouter builds the route tree. Nil handlers leave their routes out.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.StatusHandler != nil {
		r.GET("/status", cfg.StatusHandler.Status)
		r.GET("/status/last-run", cfg.StatusHandler.LastRun)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}
	return r
}

//Personal.AI order the ending
