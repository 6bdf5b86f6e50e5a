package model

import (
	"time"

	"gorm.io/gorm"
)

type Whisper struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	Content     string         `gorm:"type:text;not null"`
	Topic       Topic          `gorm:"size:32;not null;index"`
	IsSensitive bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Replies     []Reply        `gorm:"foreignKey:WhisperID;constraint:OnDelete:CASCADE"`

	// Filled by list/get queries, not a column.
	RepliesCount int64 `gorm:"->;-:migration"`
}

func (Whisper) TableName() string {
	return "whispers"
}
