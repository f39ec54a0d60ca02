package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-profiling/internal/data/repos/profiling"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type Repos struct {
	ProfilingSession profiling.SessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ProfilingSession: profiling.NewSessionRepo(db, log),
	}
}
