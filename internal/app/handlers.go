package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/neurobridge-profiling/internal/http/handlers"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type Handlers struct {
	Profiling *httpH.ProfilingHandler
	Health    *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	var bus httpH.Pinger
	if clients.EventBus != nil {
		bus = clients.EventBus
	}
	return Handlers{
		Profiling: httpH.NewProfilingHandler(services.Profiling),
		Health:    httpH.NewHealthHandler(db, bus),
	}
}
