package app

import (
	"github.com/gin-gonic/gin"

	server "github.com/yungbote/neurobridge-profiling/internal/http"
	"github.com/yungbote/neurobridge-profiling/internal/observability"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:              log,
		ServiceName:      cfg.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		Metrics:          metrics,
		AuthMiddleware:   middleware.Auth,
		ProfilingHandler: handlers.Profiling,
		HealthHandler:    handlers.Health,
	})
}
