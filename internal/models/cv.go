package models

import (
	"time"

	"github.com/google/uuid"
)

type CV struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	Content          string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	User       User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Analysis   *AnalysisResult `gorm:"foreignKey:CVID;constraint:OnDelete:CASCADE" json:"analysis,omitempty"`
	Interviews []Interview     `gorm:"foreignKey:CVID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *CV) TableName() string {
	return "cvs"
}
