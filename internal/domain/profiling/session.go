package profiling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProfilingSession persists one questionnaire attempt. Responses, Reflection,
// Scores and Result hold the engine's JSON encodings.
type ProfilingSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status string    `gorm:"column:status;not null;index" json:"status"`

	CatalogVersion string `gorm:"column:catalog_version;not null" json:"catalog_version"`

	Responses          datatypes.JSON `gorm:"column:responses" json:"responses"`
	Reflection         datatypes.JSON `gorm:"column:reflection" json:"reflection,omitempty"`
	DeclaredDifficulty string         `gorm:"column:declared_difficulty" json:"declared_difficulty,omitempty"`
	Scores             datatypes.JSON `gorm:"column:scores" json:"scores,omitempty"`
	RecommendedTrack   string         `gorm:"column:recommended_track;index" json:"recommended_track,omitempty"`
	Result             datatypes.JSON `gorm:"column:result" json:"result,omitempty"`

	StartedAt   time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at;index" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ProfilingSession) TableName() string { return "profiling_session" }
