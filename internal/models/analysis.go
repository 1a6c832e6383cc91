package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisResult holds the AI-derived profile of a CV. The unique index on
// CVID is what guarantees at most one live result per CV; concurrent creates
// surface as a duplicated-key error which the lifecycle treats as success.
type AnalysisResult struct {
	ID              uuid.UUID                    `gorm:"type:uuid;primary_key" json:"id"`
	CVID            uuid.UUID                    `gorm:"type:uuid;uniqueIndex;not null" json:"cv_id"`
	Summary         string                       `gorm:"type:text" json:"summary"`
	Skills          datatypes.JSONSlice[string]  `json:"skills"`
	ExperienceLevel string                       `gorm:"type:text" json:"experience_level"`
	AIScore         float64                      `json:"ai_score"`
	Suggestions     string                       `gorm:"type:text" json:"suggestions"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

func (AnalysisResult) TableName() string {
	return "analysis_results"
}
