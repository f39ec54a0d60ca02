package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/modules/profiling/catalog"
	"github.com/yungbote/neurobridge-profiling/internal/observability"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
	"github.com/yungbote/neurobridge-profiling/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Profiling services.ProfilingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	cat, err := catalog.Default()
	if err != nil {
		return Services{}, fmt.Errorf("load question catalog: %w", err)
	}
	engine := profiling.NewEngine(cat, log)

	var pub services.Publisher
	if clients.EventBus != nil {
		pub = clients.EventBus
	}
	notifier := services.NewProfilingNotifier(log, pub)

	return Services{
		Auth:      services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Profiling: services.NewProfilingService(db, log, engine, repos.ProfilingSession, notifier, metrics),
	}, nil
}
