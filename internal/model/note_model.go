package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index:idx_notes_user_created,priority:1"`
	Title       string         `gorm:"type:varchar(100);not null"`
	Content     string         `gorm:"type:text;not null"`
	Summary     string         `gorm:"type:varchar(500)"`
	Category    string         `gorm:"type:varchar(20);not null;default:'other';index"`
	Tags        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	IsPinned    bool           `gorm:"not null;default:false"`
	IsArchived  bool           `gorm:"not null;default:false"`
	AiSummary   bool           `gorm:"column:ai_generated_summary;not null;default:false"`
	AiCategory  bool           `gorm:"column:ai_generated_category;not null;default:false"`
	AiTags      bool           `gorm:"column:ai_generated_tags;not null;default:false"`
	Color       string         `gorm:"type:varchar(7);not null;default:'#ffffff'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_notes_user_created,priority:2,sort:desc"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
