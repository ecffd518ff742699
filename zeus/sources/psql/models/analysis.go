// zeus/sources/psql/models/analysis.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisRecord is one outfit analysis. Image is stored only when it is a
// fetchable URL, never as an inline data URL.
type AnalysisRecord struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Mode        string    `json:"mode" gorm:"type:varchar(32);not null"`
	Backend     string    `json:"backend" gorm:"type:varchar(32);default:''"`
	Input       string    `json:"input" gorm:"type:text;default:''"`
	ImageURL    string    `json:"image_url" gorm:"type:text;default:''"`
	Response    string    `json:"response" gorm:"type:text;not null"`
	StyleTags   string    `json:"style_tags" gorm:"type:text;default:''"`
	ImagePrompt string    `json:"image_prompt" gorm:"type:text;default:''"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

func (a *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AnalysisRecord) SetTags(tags []string) {
	a.StyleTags = strings.Join(tags, ",")
}

func (a AnalysisRecord) Tags() []string {
	if a.StyleTags == "" {
		return []string{}
	}
	return strings.Split(a.StyleTags, ",")
}
